package http

import "net/http"

// Commands are decoded once from the request's action parameter and matched
// exhaustively, so a controller's surface is a closed set of operations
// rather than scattered string comparisons.

type reportCommand interface{ isReportCommand() }

type listReports struct{}

type generateReport struct {
	StartDate string
	EndDate   string
}

type deleteReport struct {
	ID string
}

func (listReports) isReportCommand()    {}
func (generateReport) isReportCommand() {}
func (deleteReport) isReportCommand()   {}

// decodeReportCommand maps an unknown or missing action to the listing, as
// the default view.
func decodeReportCommand(r *http.Request) reportCommand {
	switch r.FormValue("action") {
	case "generate":
		return generateReport{
			StartDate: r.FormValue("startDate"),
			EndDate:   r.FormValue("endDate"),
		}
	case "delete":
		return deleteReport{ID: r.FormValue("id")}
	default:
		return listReports{}
	}
}

type userCommand interface{ isUserCommand() }

type listUsers struct{}

type addUser struct {
	Username string
	Email    string
	Password string
	Name     string
	Contact  string
}

type editUser struct {
	ID       string
	Username string
	Email    string
	Name     string
	Contact  string
}

type archiveUser struct {
	ID string
}

func (listUsers) isUserCommand()   {}
func (addUser) isUserCommand()     {}
func (editUser) isUserCommand()    {}
func (archiveUser) isUserCommand() {}

func decodeUserCommand(r *http.Request) userCommand {
	switch r.FormValue("action") {
	case "add":
		return addUser{
			Username: r.FormValue("username"),
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
			Name:     r.FormValue("name"),
			Contact:  r.FormValue("contact"),
		}
	case "edit":
		return editUser{
			ID:       r.FormValue("id"),
			Username: r.FormValue("username"),
			Email:    r.FormValue("email"),
			Name:     r.FormValue("name"),
			Contact:  r.FormValue("contact"),
		}
	case "archive":
		return archiveUser{ID: r.FormValue("id")}
	default:
		return listUsers{}
	}
}
