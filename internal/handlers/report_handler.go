package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"turakBack/internal/models"
	"turakBack/internal/repositories"
	"turakBack/internal/services"
)

type ReportHandler struct {
	Service *services.ReportService
}

func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var report models.Report
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if report.ListingID == nil && report.ReportedUserID == nil {
		http.Error(w, "listing_id or reported_user_id is required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(report.Reason) == "" {
		http.Error(w, "reason is required", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateReport(r.Context(), report, requesterID(r))
	if err != nil {
		if isForeignKeyConstraintError(err) {
			http.Error(w, "Reported entity not found", http.StatusNotFound)
			return
		}
		log.Printf("CreateReport error: %v", err)
		http.Error(w, "Failed to create report", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// Admin endpoints.

func (h *ReportHandler) GetAllReports(w http.ResponseWriter, r *http.Request) {
	onlyUnresolved := r.URL.Query().Get("unresolved") == "1" || r.URL.Query().Get("unresolved") == "true"

	reports, err := h.Service.GetAllReports(r.Context(), onlyUnresolved)
	if err != nil {
		log.Printf("GetAllReports error: %v", err)
		http.Error(w, "Failed to fetch reports", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(reports)
}

func (h *ReportHandler) GetReportsByListingID(w http.ResponseWriter, r *http.Request) {
	listingID, err := intParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}

	reports, err := h.Service.GetReportsByListingID(r.Context(), listingID)
	if err != nil {
		log.Printf("GetReportsByListingID error: %v", err)
		http.Error(w, "Failed to fetch reports", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(reports)
}

func (h *ReportHandler) ResolveReport(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid report ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.ResolveReport(r.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrReportNotFound) {
			http.Error(w, "Report not found", http.StatusNotFound)
			return
		}
		log.Printf("ResolveReport error: %v", err)
		http.Error(w, "Failed to resolve report", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ReportHandler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		http.Error(w, "Invalid report ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteReport(r.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrReportNotFound) {
			http.Error(w, "Report not found", http.StatusNotFound)
			return
		}
		log.Printf("DeleteReport error: %v", err)
		http.Error(w, "Failed to delete report", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
