package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abcretail/retail/fileshare"
	"github.com/abcretail/retail/model"
)

func (s *Server) recentAuditLogs(c *gin.Context) {
	entries, err := s.audit.Recent(c.Request.Context())
	if err != nil {
		s.respondError(c, "RecentAuditLogs", err)
		return
	}
	if entries == nil {
		entries = []model.AuditLog{}
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) appendAuditLog(c *gin.Context) {
	var in struct {
		Action     string         `json:"Action"`
		EntityType string         `json:"EntityType"`
		Details    map[string]any `json:"Details"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	if err := s.audit.Record(c.Request.Context(), in.Action, in.EntityType, in.Details); err != nil {
		s.respondError(c, "AppendAuditLog", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Audit log entry created"})
}

func (s *Server) uploadFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file is required"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file is required"})
		return
	}
	defer file.Close()

	if err := s.files.Save(header.Filename, file); err != nil {
		if errors.Is(err, fileshare.ErrBadFileName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file name"})
			return
		}
		s.respondError(c, "UploadFile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fileName": header.Filename})
}

func (s *Server) listFiles(c *gin.Context) {
	names, err := s.files.List()
	if err != nil {
		s.respondError(c, "ListFiles", err)
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, names)
}
