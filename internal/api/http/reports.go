package httpapi

import (
	"fmt"
	"net/http"

	"log/slog"

	"github.com/akademia/backoffice-manager/internal/entity"
	"github.com/akademia/backoffice-manager/internal/export"
	"github.com/go-chi/render"
)

func (s *Server) handleFilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.reports.FilterOptions(r.Context())
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "filter options",
			slog.String("err", err.Error()),
		)
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	render.JSON(w, r, opts)
}

func (s *Server) handleSalesReport(w http.ResponseWriter, r *http.Request) {
	fs, err := s.parseFilters(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	rep, err := s.reports.SalesReport(r.Context(), fs)
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "sales report",
			slog.String("err", err.Error()),
		)
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	render.JSON(w, r, rep)
}

func (s *Server) handleOrderList(w http.ResponseWriter, r *http.Request) {
	fs, err := s.parseFilters(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	list, err := s.reports.OrderList(r.Context(), fs)
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "order list",
			slog.String("err", err.Error()),
		)
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	render.JSON(w, r, list)
}

func (s *Server) handleNotificationReport(w http.ResponseWriter, r *http.Request) {
	fs, err := s.parseFilters(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	rep, err := s.reports.NotificationReport(r.Context(), fs)
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "notification report",
			slog.String("err", err.Error()),
		)
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	render.JSON(w, r, rep)
}

func (s *Server) handlePackageReport(w http.ResponseWriter, r *http.Request) {
	fs, err := s.parseFilters(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	rep, err := s.reports.PackageReport(r.Context(), fs)
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "package report",
			slog.String("err", err.Error()),
		)
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	render.JSON(w, r, rep)
}

func (s *Server) handleEnrollmentReport(w http.ResponseWriter, r *http.Request) {
	fs, err := s.parseFilters(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	rep, err := s.reports.EnrollmentReport(r.Context(), fs)
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "enrollment report",
			slog.String("err", err.Error()),
		)
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	render.JSON(w, r, rep)
}

// writeCSV streams a built document with the attachment headers. The export
// reflects the same filter state as the interactive view; it is not an
// independent query path.
func writeCSV(w http.ResponseWriter, r *http.Request, doc *export.Document, name string, fs entity.FilterState) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(name, fs)))
	if _, err := doc.WriteTo(w); err != nil {
		slog.Default().ErrorContext(r.Context(), "csv export",
			slog.String("err", err.Error()),
		)
	}
}

func (s *Server) handleSalesExport(w http.ResponseWriter, r *http.Request) {
	fs, err := s.parseFilters(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	rep, err := s.reports.SalesReport(r.Context(), fs)
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "sales export",
			slog.String("err", err.Error()),
		)
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	writeCSV(w, r, export.BuildSales(rep, fs), "sales", fs)
}

func (s *Server) handleNotificationExport(w http.ResponseWriter, r *http.Request) {
	fs, err := s.parseFilters(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	rep, err := s.reports.NotificationReport(r.Context(), fs)
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "notification export",
			slog.String("err", err.Error()),
		)
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	writeCSV(w, r, export.BuildNotifications(rep, fs), "notifications", fs)
}

func (s *Server) handlePackageExport(w http.ResponseWriter, r *http.Request) {
	fs, err := s.parseFilters(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	rep, err := s.reports.PackageReport(r.Context(), fs)
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "package export",
			slog.String("err", err.Error()),
		)
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	writeCSV(w, r, export.BuildPackages(rep, fs), "packages", fs)
}

func (s *Server) handleEnrollmentExport(w http.ResponseWriter, r *http.Request) {
	fs, err := s.parseFilters(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	rep, err := s.reports.EnrollmentReport(r.Context(), fs)
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "enrollment export",
			slog.String("err", err.Error()),
		)
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	writeCSV(w, r, export.BuildEnrollments(rep, fs), "enrollments", fs)
}
