package rest

import (
	"net/http"
	"strings"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"
	"github.com/ianmeigh/property-direct-backend/internal/core/port/usecases_port"
)

type DictionaryHandler struct {
	getUC usecases_port.GetDictionariesUseCasePort
}

func NewDictionaryHandler(getUC usecases_port.GetDictionariesUseCasePort) *DictionaryHandler {
	return &DictionaryHandler{getUC: getUC}
}

// GetDictionaries handles GET /api/v1/dictionaries?names=a,b. No names means all.
func (h *DictionaryHandler) GetDictionaries(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetDictionaries"})

	var names []string
	if raw := r.URL.Query().Get("names"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}

	dictionaries, err := h.getUC.Execute(r.Context(), names)
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}

	response := make(map[string][]DictionaryItemResponse, len(dictionaries))
	for name, items := range dictionaries {
		out := make([]DictionaryItemResponse, len(items))
		for i, item := range items {
			out[i] = DictionaryItemResponse{SystemName: item.SystemName, DisplayName: item.DisplayName}
		}
		response[name] = out
	}
	RespondWithJSON(w, http.StatusOK, response)
}

// Root answers GET / with a welcome message.
func Root(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the Property Direct API"})
}
