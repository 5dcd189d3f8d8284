package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shoptext/shoptext/internal/httputil"
	"github.com/shoptext/shoptext/internal/template"
)

// handleGetTemplates returns the effective template pair for a shop.
// A shop that never customized anything gets the built-in defaults.
func (s *Server) handleGetTemplates(w http.ResponseWriter, r *http.Request) {
	shop := chi.URLParam(r, "shop")
	tpls, err := s.templates.Get(r.Context(), shop)
	if err != nil {
		s.logger.Error("loading templates failed", "shop", shop, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to load templates")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tpls)
}

// handlePutTemplates overwrites a shop's template pair wholesale. Empty
// fields revert to the built-in default on the next read.
func (s *Server) handlePutTemplates(w http.ResponseWriter, r *http.Request) {
	shop := chi.URLParam(r, "shop")

	var tpls template.ShopTemplates
	if !httputil.DecodeJSON(w, r, &tpls) {
		return
	}

	if err := s.templates.Put(r.Context(), shop, tpls); err != nil {
		s.logger.Error("saving templates failed", "shop", shop, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to save templates")
		return
	}

	stored, err := s.templates.Get(r.Context(), shop)
	if err != nil {
		s.logger.Error("reloading templates failed", "shop", shop, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to load templates")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stored)
}

// handleDeleteTemplates reverts a shop to the built-in defaults.
func (s *Server) handleDeleteTemplates(w http.ResponseWriter, r *http.Request) {
	shop := chi.URLParam(r, "shop")
	if err := s.templates.Delete(r.Context(), shop); err != nil {
		s.logger.Error("deleting templates failed", "shop", shop, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to delete templates")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
