package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// InternalAuth requires X-Internal-Token to match token. An empty token
// disables the check.
func InternalAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token != "" && subtle.ConstantTimeCompare([]byte(r.Header.Get("X-Internal-Token")), []byte(token)) != 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

const AccessPasswordHeader = "X-Access-Password"

// AccessGate asks for a shared password in X-Access-Password. Input is
// upper-cased before comparison. It keeps casual visitors out and is not
// an authentication boundary. An empty password disables the gate.
func AccessGate(password string) (func(http.Handler) http.Handler, error) {
	if password == "" {
		return func(next http.Handler) http.Handler { return next }, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(strings.ToUpper(password)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			input := strings.ToUpper(strings.TrimSpace(r.Header.Get(AccessPasswordHeader)))
			if input == "" || bcrypt.CompareHashAndPassword(hash, []byte(input)) != nil {
				http.Error(w, "access password required", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}, nil
}
