package main

import (
	_ "embed"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/davrk/errblast/internal/config"
	"github.com/davrk/errblast/internal/theme"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed error.html
var errorPage string

func main() {
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "localhost")

	mux := http.NewServeMux()
	for _, code := range theme.Codes() {
		mux.HandleFunc("/"+code, errorHandler(code, sshHost))
	}
	// Everything else really is a 404
	mux.HandleFunc("/", errorHandler("404", sshHost))

	addr := fmt.Sprintf("%s:%s", host, port)
	log.Info("starting web server", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal("server error", "err", err)
	}
}

// errorHandler serves the themed error page with the matching HTTP status,
// pointing visitors at the SSH game for that code.
func errorHandler(code, sshHost string) http.HandlerFunc {
	t := theme.ForCode(code)
	page := strings.NewReplacer(
		"{{.Code}}", t.Code,
		"{{.Message}}", t.Message,
		"{{.BgInner}}", t.BgInner.Hex(),
		"{{.BgOuter}}", t.BgOuter.Hex(),
		"{{.Accent}}", t.Accent.Hex(),
		"{{.SSHHost}}", sshHost,
	).Replace(errorPage)

	status := statusFor(code)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		fmt.Fprint(w, page)
	}
}

func statusFor(code string) int {
	switch code {
	case "403":
		return http.StatusForbidden
	case "500":
		return http.StatusInternalServerError
	default:
		return http.StatusNotFound
	}
}
