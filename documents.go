package folio

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/activity"
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/views"
)

func (a *App) bindInput(c echo.Context) (content.Input, bool) {
	var in content.Input
	if err := c.Bind(&in); err != nil {
		return in, false
	}
	return in, true
}

func (a *App) handleCreate(col content.Collection) echo.HandlerFunc {
	return func(c echo.Context) error {
		in, ok := a.bindInput(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
		}
		slug, err := a.Store.Create(col, in)
		if err != nil {
			return a.fail(c, err, "Failed to create "+col.Noun())
		}
		a.record(c.Request().Context(), activity.Entry{
			Action:     activity.ActionCreate,
			Collection: string(col),
			Target:     slug,
		})
		return c.JSON(http.StatusCreated, echo.Map{
			"success": true,
			"slug":    slug,
			"message": col.Label() + " created successfully",
		})
	}
}

func (a *App) handleGet(col content.Collection) echo.HandlerFunc {
	return func(c echo.Context) error {
		doc, err := a.Store.Get(col, c.Param("slug"))
		if err != nil {
			return a.fail(c, err, "Failed to read "+col.Noun())
		}
		return c.JSON(http.StatusOK, doc)
	}
}

func (a *App) handleUpdate(col content.Collection) echo.HandlerFunc {
	return func(c echo.Context) error {
		slug := c.Param("slug")
		in, ok := a.bindInput(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
		}
		if err := a.Store.Update(col, slug, in); err != nil {
			return a.fail(c, err, "Failed to update "+col.Noun())
		}
		a.record(c.Request().Context(), activity.Entry{
			Action:     activity.ActionUpdate,
			Collection: string(col),
			Target:     slug,
		})
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"slug":    slug,
			"message": col.Label() + " updated successfully",
		})
	}
}

func (a *App) handleDelete(col content.Collection) echo.HandlerFunc {
	return func(c echo.Context) error {
		slug := c.Param("slug")
		if err := a.Store.Delete(col, slug); err != nil {
			return a.fail(c, err, "Failed to delete "+col.Noun())
		}
		a.record(c.Request().Context(), activity.Entry{
			Action:     activity.ActionDelete,
			Collection: string(col),
			Target:     slug,
		})
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": col.Label() + " deleted successfully",
		})
	}
}

func (a *App) handleCatalog(col content.Collection) echo.HandlerFunc {
	return func(c echo.Context) error {
		listing, err := a.Store.List(col)
		if err != nil {
			return a.fail(c, err, "Failed to list "+col.Noun()+"s")
		}
		skipped := listing.Skipped
		if skipped == nil {
			skipped = []string{}
		}
		return c.JSON(http.StatusOK, echo.Map{
			"items":   listing.Items,
			"count":   len(listing.Items),
			"skipped": skipped,
		})
	}
}

func (a *App) handleCatalogPage(col content.Collection) echo.HandlerFunc {
	return func(c echo.Context) error {
		listing, err := a.Store.List(col)
		if err != nil {
			return err
		}
		return a.Render(c, col.Label()+"s", views.Catalog(col, listing))
	}
}
