package response

import (
	"github.com/gin-gonic/gin"
)

type PaginationMeta struct {
	Total      int64 `json:"total,omitempty"`
	TotalPages int   `json:"totalPages,omitempty"`
	Page       int   `json:"page,omitempty"`
	PageSize   int   `json:"pageSize,omitempty"`
}

func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		// Pembulatan ke atas: (total + limit - 1) / limit
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return PaginationMeta{
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   limit,
	}
}

// Success menulis body sukses dengan flag success:true.
// Field tambahan (messageId, data, dll) digabung ke level teratas
// agar bentuk wire tetap datar.
func Success(c *gin.Context, status int, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}

// SuccessList untuk list endpoint dengan pagination meta.
func SuccessList(c *gin.Context, status int, data any, meta *PaginationMeta) {
	body := gin.H{
		"success": true,
		"data":    data,
	}
	if meta != nil {
		body["meta"] = meta
	}
	c.JSON(status, body)
}

func Error(c *gin.Context, status int, errorCode string, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"code":    errorCode,
		"error":   message,
	})
}
