package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/gamebase/internal/catalog"
	"github.com/erazemk/gamebase/internal/model"
)

const categoryListURL = "/catalog/categories"

type categoryForm struct {
	PageData
	Input  catalog.CategoryInput
	Errors []string
}

// CategoryList handles GET /catalog/categories.
func (s *Server) CategoryList(w http.ResponseWriter, r *http.Request) {
	categories, err := s.Categories.ListAll(r.Context())
	if err != nil {
		s.serverError(w, r, "failed to list categories", err)
		return
	}

	s.Templates.Render(w, http.StatusOK, "category_list.html", &struct {
		PageData
		Categories []model.Category
	}{
		PageData:   s.page(r, "Lista de Categorías"),
		Categories: categories,
	})
}

// CategoryDetail handles GET /catalog/category/{id}.
func (s *Server) CategoryDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := s.Categories.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) {
		s.notFound(w, r, "Categoría no encontrada")
		return
	}
	if err != nil {
		s.serverError(w, r, "failed to get category", err)
		return
	}

	s.Templates.Render(w, http.StatusOK, "category_detail.html", &struct {
		PageData
		*catalog.CategoryDetail
	}{
		PageData:       s.page(r, detail.Category.Name),
		CategoryDetail: detail,
	})
}

// CategoryCreatePage handles GET /catalog/category/create.
func (s *Server) CategoryCreatePage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, http.StatusOK, "category_form.html", &categoryForm{
		PageData: s.page(r, "Crear Categoría"),
	})
}

// CategoryCreateSubmit handles POST /catalog/category/create. A name that
// matches an existing category leads to that category instead.
func (s *Server) CategoryCreateSubmit(w http.ResponseWriter, r *http.Request) {
	in := catalog.CategoryInput{Name: r.PostFormValue("name")}

	c, created, err := s.Categories.Create(r.Context(), in)
	var verr *catalog.ValidationError
	if errors.As(err, &verr) {
		s.Templates.Render(w, http.StatusOK, "category_form.html", &categoryForm{
			PageData: s.page(r, "Crear Categoría"),
			Input:    in,
			Errors:   verr.Messages(),
		})
		return
	}
	if err != nil {
		s.serverError(w, r, "failed to create category", err)
		return
	}

	if created {
		slog.Info("category created", "category", c.Name, "id", c.ID)
	}
	http.Redirect(w, r, c.URL(), http.StatusSeeOther)
}

// CategoryUpdatePage handles GET /catalog/category/{id}/update.
func (s *Server) CategoryUpdatePage(w http.ResponseWriter, r *http.Request) {
	detail, err := s.Categories.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) {
		s.notFound(w, r, "Categoría no encontrada")
		return
	}
	if err != nil {
		s.serverError(w, r, "failed to get category", err)
		return
	}

	s.Templates.Render(w, http.StatusOK, "category_form.html", &categoryForm{
		PageData: s.page(r, "Actualizar Categoría"),
		Input:    catalog.CategoryInput{Name: detail.Category.Name},
	})
}

// CategoryUpdateSubmit handles POST /catalog/category/{id}/update.
func (s *Server) CategoryUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	in := catalog.CategoryInput{Name: r.PostFormValue("name")}

	c, err := s.Categories.Update(r.Context(), chi.URLParam(r, "id"), in)
	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		s.Templates.Render(w, http.StatusOK, "category_form.html", &categoryForm{
			PageData: s.page(r, "Actualizar Categoría"),
			Input:    in,
			Errors:   verr.Messages(),
		})
		return
	case errors.Is(err, catalog.ErrNotFound):
		s.notFound(w, r, "Categoría no encontrada")
		return
	case err != nil:
		s.serverError(w, r, "failed to update category", err)
		return
	}

	slog.Info("category updated", "category", c.Name, "id", c.ID)
	http.Redirect(w, r, c.URL(), http.StatusSeeOther)
}

type categoryDelete struct {
	PageData
	Category model.Category
	Games    []model.GameSummary
}

// CategoryDeletePage handles GET /catalog/category/{id}/delete. A missing
// category sends the browser back to the list.
func (s *Server) CategoryDeletePage(w http.ResponseWriter, r *http.Request) {
	detail, err := s.Categories.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) {
		http.Redirect(w, r, categoryListURL, http.StatusSeeOther)
		return
	}
	if err != nil {
		s.serverError(w, r, "failed to get category", err)
		return
	}

	s.Templates.Render(w, http.StatusOK, "category_delete.html", &categoryDelete{
		PageData: s.page(r, "Eliminar Categoría"),
		Category: detail.Category,
		Games:    detail.Games,
	})
}

// CategoryDeleteSubmit handles POST /catalog/category/{id}/delete. While
// games still reference the category the confirmation page is shown again.
func (s *Server) CategoryDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	c, err := s.Categories.Delete(r.Context(), chi.URLParam(r, "id"))

	var inUse *catalog.InUseError
	if errors.As(err, &inUse) {
		if inUse.Category == nil {
			http.Redirect(w, r, categoryListURL, http.StatusSeeOther)
			return
		}
		s.Templates.Render(w, http.StatusOK, "category_delete.html", &categoryDelete{
			PageData: s.page(r, "Eliminar Categoría"),
			Category: *inUse.Category,
			Games:    inUse.Games,
		})
		return
	}
	if err != nil {
		s.serverError(w, r, "failed to delete category", err)
		return
	}

	if c != nil {
		slog.Info("category deleted", "category", c.Name, "id", c.ID)
	}
	http.Redirect(w, r, categoryListURL, http.StatusSeeOther)
}
