package http

import (
	"net/http"
	"strconv"
	"strings"

	gin "github.com/gin-gonic/gin"

	"github.com/drew2323/v3trading/internal/cache"
	"github.com/drew2323/v3trading/internal/domain"
	"github.com/drew2323/v3trading/internal/ledger"
	"github.com/drew2323/v3trading/internal/models"
)

func parseInt(v string, def int) (int, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (s *Server) getTrades(c *gin.Context) {
	page, ok := parseInt(c.Query("page"), ledger.DefaultPage)
	if !ok {
		s.validationError(c, "page: must be an integer")
		return
	}
	limit, ok := parseInt(c.Query("limit"), ledger.DefaultLimit)
	if !ok {
		s.validationError(c, "limit: must be an integer")
		return
	}
	q := ledger.Query{
		Page:      page,
		Limit:     limit,
		SortBy:    c.Query("sortBy"),
		SortOrder: domain.ParseSortOrder(c.DefaultQuery("sortOrder", string(domain.SortDesc))),
	}
	if err := q.Validate(); err != nil {
		s.writeError(c, "getTrades", err)
		return
	}

	if s.Pages != nil {
		if cached, ok := s.Pages.Get(cache.Trades(s.Ledger.Revision(), q.Page, q.Limit, q.SortOrder)); ok {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	result, rev, err := s.Ledger.ListWithRevision(q)
	if err != nil {
		s.writeError(c, "getTrades", err)
		return
	}
	if s.Pages != nil {
		s.Pages.Set(cache.Trades(rev, q.Page, q.Limit, q.SortOrder), result)
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) getTrade(c *gin.Context) {
	t, err := s.Ledger.Get(c.Param("id"))
	if err != nil {
		s.writeError(c, "getTrade", err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) createTrade(c *gin.Context) {
	var req models.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.validationError(c, err.Error())
		return
	}
	t, err := s.Ledger.Create(c.Request.Context(), req)
	if err != nil {
		s.writeError(c, "createTrade", err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (s *Server) cancelTrade(c *gin.Context) {
	t, err := s.Ledger.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, "cancelTrade", err)
		return
	}
	c.JSON(http.StatusOK, t)
}
