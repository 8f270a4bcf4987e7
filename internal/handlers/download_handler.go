package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type NoteDownloadRequest struct {
	UserName string `json:"userName" binding:"required"`
	NoteID   string `json:"noteId" binding:"required"`
}

func LogNoteDownload(c *gin.Context) {
	var req NoteDownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidInput(c)
		return
	}

	svc, ok := getServices(c)
	if !ok {
		return
	}

	if err := svc.Downloads.LogNoteDownload(c.Request.Context(), req.UserName, req.NoteID); err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true})
}
