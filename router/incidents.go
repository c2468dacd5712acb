package router

import (
	"errors"
	"net/http"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"

	"github.com/stadtwache/stadtwache/model"
	"github.com/stadtwache/stadtwache/repository"
	"github.com/stadtwache/stadtwache/router/extension/herror"
)

// PostIncidentRequest POST /api/incidents リクエストボディ
type PostIncidentRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Priority    string            `json:"priority"`
	Location    model.Coordinates `json:"location"`
	Address     string            `json:"address"`
	Images      []string          `json:"images"`
}

func (r PostIncidentRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Title, vd.Required, vd.RuneLength(1, 255)),
		vd.Field(&r.Description, vd.Required),
		vd.Field(&r.Priority, vd.Required, vd.By(func(v interface{}) error {
			if !model.ValidIncidentPriority(v.(string)) {
				return errors.New("must be high, medium or low")
			}
			return nil
		})),
		vd.Field(&r.Address, vd.Required),
	)
}

// CreateIncident POST /api/incidents
func (h *Handlers) CreateIncident(c echo.Context) error {
	var req PostIncidentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	incident, err := h.Repo.CreateIncident(repository.CreateIncidentArgs{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Location:    req.Location,
		Address:     req.Address,
		ReportedBy:  getRequestUser(c).ID,
		Images:      req.Images,
	})
	if err != nil {
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, incident)
}

// GetIncidents GET /api/incidents
func (h *Handlers) GetIncidents(c echo.Context) error {
	incidents, err := h.Repo.GetIncidents()
	if err != nil {
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, incidents)
}

// GetIncident GET /api/incidents/:incidentID
func (h *Handlers) GetIncident(c echo.Context) error {
	id, err := getParamAsUUID(c, "incidentID")
	if err != nil {
		return err
	}

	incident, err := h.Repo.GetIncident(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return herror.NotFound("Incident not found")
		}
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, incident)
}

// PutIncidentRequest PUT /api/incidents/:incidentID リクエストボディ
type PutIncidentRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	Address     *string `json:"address"`
}

func (r PutIncidentRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Title, vd.NilOrNotEmpty, vd.RuneLength(1, 255)),
		vd.Field(&r.Priority, vd.By(func(v interface{}) error {
			if p, ok := v.(*string); ok && p != nil && !model.ValidIncidentPriority(*p) {
				return errors.New("must be high, medium or low")
			}
			return nil
		})),
	)
}

// UpdateIncident PUT /api/incidents/:incidentID
func (h *Handlers) UpdateIncident(c echo.Context) error {
	if !getRequestUser(c).CanManageIncidents() {
		return herror.Forbidden("Not authorized")
	}

	id, err := getParamAsUUID(c, "incidentID")
	if err != nil {
		return err
	}

	var req PutIncidentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	incident, err := h.Repo.UpdateIncident(id, repository.UpdateIncidentArgs{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		Address:     req.Address,
	})
	if err != nil {
		var argErr *repository.ArgumentError
		switch {
		case errors.As(err, &argErr):
			return herror.BadRequest(argErr)
		case errors.Is(err, repository.ErrNotFound):
			return herror.NotFound("Incident not found")
		}
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, incident)
}

// AssignIncident PUT /api/incidents/:incidentID/assign
func (h *Handlers) AssignIncident(c echo.Context) error {
	me := getRequestUser(c)
	if !me.CanManageIncidents() {
		return herror.Forbidden("Not authorized")
	}

	id, err := getParamAsUUID(c, "incidentID")
	if err != nil {
		return err
	}

	incident, err := h.Repo.AssignIncident(id, repository.AssignIncidentArgs{
		AssignedTo:     me.ID,
		AssignedToName: me.Name,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return herror.NotFound("Incident not found")
		}
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, incident)
}

// CompleteIncident PUT /api/incidents/:incidentID/complete
func (h *Handlers) CompleteIncident(c echo.Context) error {
	me := getRequestUser(c)
	if !me.CanManageIncidents() {
		return herror.Forbidden("Not authorized")
	}

	id, err := getParamAsUUID(c, "incidentID")
	if err != nil {
		return err
	}

	archive, err := h.Repo.CompleteIncident(id, me)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return herror.NotFound("Incident not found")
		}
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":     "success",
		"message":    "Incident completed and archived",
		"archive_id": archive.ID,
	})
}

// DeleteIncident DELETE /api/incidents/:incidentID
func (h *Handlers) DeleteIncident(c echo.Context) error {
	if !getRequestUser(c).IsAdmin() {
		return herror.Forbidden("Not authorized")
	}

	id, err := getParamAsUUID(c, "incidentID")
	if err != nil {
		return err
	}

	if err := h.Repo.DeleteIncident(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return herror.NotFound("Incident not found")
		}
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "success", "message": "Incident deleted"})
}
