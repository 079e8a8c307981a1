package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type PagesHandler struct{}

func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

func (h *PagesHandler) About(c *gin.Context) {
	Render(c, http.StatusOK, "pages/about.html", gin.H{"Title": "About"})
}

func (h *PagesHandler) Contact(c *gin.Context) {
	Render(c, http.StatusOK, "pages/contact.html", gin.H{"Title": "Contact"})
}
