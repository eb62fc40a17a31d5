package cookies

import (
	"net/http"
	"net/url"
)

// Cookie names used by the OpenID login flow.
const (
	StateCookie      = "ftek_oauth_state"
	NonceCookie      = "ftek_oauth_nonce"
	RedirectToCookie = "ftek_redirect_to"
	LoginErrorCookie = "ftek_login_error"
)

// Store is the per-request cookie access used by the login flow
type Store interface {
	Get(name string) (string, bool)
	Set(name, value string)
	Delete(name string)
}

// Jar reads cookies from the request and writes changes to the response.
// Writes are visible to later reads on the same Jar.
type Jar struct {
	w       http.ResponseWriter
	secure  bool
	values  map[string]string
	deleted map[string]bool
}

// New creates a Jar for a single request/response pair
func New(w http.ResponseWriter, r *http.Request, secure bool) *Jar {
	values := make(map[string]string)
	for _, c := range r.Cookies() {
		v, err := url.QueryUnescape(c.Value)
		if err != nil {
			v = c.Value
		}
		values[c.Name] = v
	}

	return &Jar{
		w:       w,
		secure:  secure,
		values:  values,
		deleted: make(map[string]bool),
	}
}

// Get returns the value of the named cookie
func (j *Jar) Get(name string) (string, bool) {
	if j.deleted[name] {
		return "", false
	}
	v, ok := j.values[name]
	return v, ok
}

// Set stores a session-lifetime cookie scoped to the whole site
func (j *Jar) Set(name, value string) {
	delete(j.deleted, name)
	j.values[name] = value

	http.SetCookie(j.w, &http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(value),
		Path:     "/",
		Secure:   j.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Delete expires the named cookie
func (j *Jar) Delete(name string) {
	j.deleted[name] = true
	delete(j.values, name)

	http.SetCookie(j.w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   j.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
