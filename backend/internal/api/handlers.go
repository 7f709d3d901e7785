package api

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"maxim-atlas/backend/internal/dispatch"
	"maxim-atlas/backend/internal/graph"
	"maxim-atlas/backend/internal/panel"
	"maxim-atlas/backend/internal/state"
	"maxim-atlas/backend/internal/view"
	apperrors "maxim-atlas/backend/pkg/errors"
)

func (s *Server) handleHealth(c *gin.Context) {
	snap := s.holder.Snapshot()

	code := http.StatusOK
	status := "ok"
	if snap.Status != state.StatusReady {
		code = http.StatusServiceUnavailable
		status = string(snap.Status)
	}

	c.JSON(code, gin.H{
		"status":   status,
		"graph":    snap,
		"sessions": s.sessions.Len(),
	})
}

func (s *Server) handleGraph(c *gin.Context) {
	c.JSON(http.StatusOK, storeFrom(c).Data())
}

type themeEntry struct {
	panel.Chip
	Count int `json:"count"`
}

func (s *Server) handleThemes(c *gin.Context) {
	stats := storeFrom(c).Stats()

	legend := panel.Legend()
	out := make([]themeEntry, 0, len(legend))
	for _, chip := range legend {
		out = append(out, themeEntry{Chip: chip, Count: stats.NodesByTheme[chip.Theme]})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, storeFrom(c).Stats())
}

func (s *Server) handleNode(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "node id must be an integer"})
		return
	}

	store := storeFrom(c)
	node, ok := store.Node(id)
	if !ok {
		s.fail(c, apperrors.NewNodeNotFound(id), "Failed to fetch node")
		return
	}

	detail := panel.BuildDetail(node, store.NeighborSummaries(id))
	if c.Query("format") == "html" {
		html, err := panel.Render(detail)
		if err != nil {
			s.fail(c, err, "Failed to render node")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (s *Server) handleSearch(c *gin.Context) {
	query := view.NormalizeQuery(c.Query("q"))
	store := storeFrom(c)

	results := []graph.Summary{}
	if query != "" {
		ids := store.Match(query)
		sort.Ints(ids)
		for _, id := range ids {
			n, _ := store.Node(id)
			results = append(results, graph.Summary{ID: n.ID, Title: n.FullTitle, Numeral: n.Numeral})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}

func (s *Server) handleCreateSession(c *gin.Context) {
	sess := s.sessions.Create(storeFrom(c))

	update, err := sess.Snapshot()
	if err != nil {
		s.fail(c, err, "Failed to create session")
		return
	}
	c.JSON(http.StatusCreated, update)
}

func (s *Server) handleGetSession(c *gin.Context) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		s.fail(c, err, "Failed to fetch session")
		return
	}

	update, err := sess.Snapshot()
	if err != nil {
		s.fail(c, err, "Failed to fetch session")
		return
	}
	c.JSON(http.StatusOK, update)
}

func (s *Server) handleEvent(c *gin.Context) {
	var ev dispatch.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if ev.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event type is required"})
		return
	}

	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		s.fail(c, err, "Failed to fetch session")
		return
	}

	update, err := sess.Dispatch(ev)
	if err != nil {
		s.fail(c, err, "Failed to handle event")
		return
	}
	c.JSON(http.StatusOK, update)
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	if !s.sessions.Delete(c.Param("id")) {
		s.fail(c, apperrors.NewSessionNotFound(c.Param("id")), "Failed to delete session")
		return
	}
	c.Status(http.StatusNoContent)
}
