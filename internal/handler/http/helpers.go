package http

import (
	"net/http"

	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/apperr"
	"github.com/vasiliy-maslov/ecommerce-backoffice/internal/web"
)

func redirectWithSuccess(w http.ResponseWriter, r *http.Request, flash *web.FlashCodec, url, message string) {
	flash.Set(w, web.Flash{Kind: web.FlashSuccess, Message: message})
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// redirectWithError converts an operation error into the transient flash
// shown on the next view. Unauthorized callers go to the login view with
// no flash at all.
func redirectWithError(w http.ResponseWriter, r *http.Request, flash *web.FlashCodec, url string, err error) {
	if apperr.KindOf(err) == apperr.Unauthorized {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	flash.Set(w, web.Flash{Kind: web.FlashError, Message: apperr.PublicMessage(err)})
	http.Redirect(w, r, url, http.StatusSeeOther)
}
