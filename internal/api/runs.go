package api

import (
	"errors"
	"net/http"
	"os"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/util"
	"github.com/qdm12/reprint"
)

func (s *service) registerRunEndpoints(rest *echo.Echo) {
	group := rest.Group("/run")

	group.GET("/", s.getRuns)
	group.GET("/:"+urlParamId+"/", s.getRun)
	group.DELETE("/:"+urlParamId+"/", s.deleteRun)
}

// returns all runs of this process and the store, oldest first
func (s *service) getRuns(c echo.Context) error {
	runs := reprint.This(s.runs.Items()).(map[string]persistence.Run)

	if s.store != nil {
		stored, err := s.store.ListRuns()
		if err != nil {
			return returnError(c, err)
		}
		for _, run := range stored {
			runs[run.ID] = run
		}
	}

	// runs created at the same time keep their id order
	data := make([]persistence.Run, 0, len(runs))
	for _, id := range util.SortedKeys(runs) {
		data = append(data, runs[id])
	}
	sort.SliceStable(data, func(i, j int) bool {
		return data[i].CreatedAt.Before(data[j].CreatedAt)
	})

	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func (s *service) getRun(c echo.Context) error {
	id := c.Param(urlParamId)

	if run, exists := s.runs.Get(id); exists {
		return c.JSONPretty(http.StatusOK, run, indentationChar)
	}
	if s.store == nil {
		return returnNotFound(c, id)
	}

	run, err := s.store.LoadRun(id)
	if errors.Is(err, os.ErrNotExist) {
		return returnNotFound(c, id)
	} else if err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, run, indentationChar)
}

func (s *service) deleteRun(c echo.Context) error {
	id := c.Param(urlParamId)

	_, found := s.runs.Pop(id)
	if s.store != nil {
		err := s.store.DeleteRun(id)
		if err == nil {
			found = true
		} else if !errors.Is(err, os.ErrNotExist) {
			return returnError(c, err)
		}
	}

	if !found {
		return returnNotFound(c, id)
	}
	return c.NoContent(http.StatusNoContent)
}
