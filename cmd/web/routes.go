package main

import (
	"io/fs"
	"net/http"

	"github.com/justinas/alice"
	"github.com/lendfolio/lendfolio/ui"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	staticFS, err := fs.Sub(ui.Files, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("GET /static/", cacheForeverHeaders(http.StripPrefix("/static/", http.FileServerFS(staticFS))))

	mux.HandleFunc("GET /api/healthy", app.healthy)

	session := alice.New(app.sessionManager.LoadAndSave, noSurf, commonContext, app.authenticate)

	mux.Handle("GET /{$}", session.ThenFunc(app.home))
	mux.Handle("GET /assistant", session.ThenFunc(app.assistantPage))
	mux.Handle("POST /assistant/answer", session.ThenFunc(app.submitAnswer))
	mux.Handle("POST /assistant/reset", session.ThenFunc(app.resetAssistant))
	mux.Handle("POST /assistant/summary", session.ThenFunc(app.generateSummary))
	mux.Handle("POST /assistant/save", session.ThenFunc(app.saveSubmission))
	mux.Handle("GET /assistant/package.pdf", session.ThenFunc(app.downloadPackage))

	return app.recoverPanic(app.logRequest(secureHeaders(mux)))
}
