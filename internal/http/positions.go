package http

import (
	"net/http"

	gin "github.com/gin-gonic/gin"
)

func (s *Server) getPositions(c *gin.Context) {
	c.JSON(http.StatusOK, s.Positions.GetAll())
}

func (s *Server) getPosition(c *gin.Context) {
	p, err := s.Positions.GetBySymbol(c.Param("symbol"))
	if err != nil {
		s.writeError(c, "getPosition", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) closePosition(c *gin.Context) {
	p, err := s.Positions.Close(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		s.writeError(c, "closePosition", err)
		return
	}
	c.JSON(http.StatusOK, p)
}
