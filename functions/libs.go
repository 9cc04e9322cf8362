package functions

import (
	"log/slog"
	"net/http"
)

const textParam = "textToAnalyze"

// getTextQuery reads the text to analyze from the query string or a posted form.
// A missing parameter is treated as blank text.
func getTextQuery(r *http.Request) string {
	text := r.FormValue(textParam)
	if text == "" {
		slog.Info("text is empty", slog.Group("getTextQuery", "param", textParam))
	}
	return text
}
