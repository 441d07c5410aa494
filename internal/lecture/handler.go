package lecture

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/intellect-ai/internal/auth"
)

type generateLectureRequest struct {
	Topic string `json:"topic" binding:"required"`
}

// GenerateHandler は POST /generate-lecture のハンドラーを返します。
// 生成サービスの失敗は解釈を加えず、エラーメッセージをそのまま 500 で返します。
func GenerateHandler(gen Generator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req generateLectureRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "INVALID_INPUT",
				"message": "topic is required",
			})
			return
		}

		data, err := gen.Generate(c.Request.Context(), req.Topic)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    "GENERATION_FAILED",
				"message": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"data":   data,
		})
	}
}

type storeLectureRequest struct {
	Topic   string `json:"topic" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// StoreHandler は POST /api/lectures のハンドラーを返します。
// 認証済みユーザーの講義として保存します。
func StoreHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "authentication required",
			})
			return
		}

		var req storeLectureRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "INVALID_INPUT",
				"message": "topic, title and content are required",
			})
			return
		}

		lec := &Lecture{
			UserID:  userID,
			Topic:   req.Topic,
			Title:   req.Title,
			Content: req.Content,
		}
		id, err := store.Insert(c.Request.Context(), lec)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "failed to store lecture",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Lecture stored successfully",
			"id":      id,
		})
	}
}

// ListHandler は GET /api/lectures のハンドラーを返します。
func ListHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "authentication required",
			})
			return
		}

		lectures, err := store.ListByUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "failed to list lectures",
			})
			return
		}
		if lectures == nil {
			lectures = []Lecture{}
		}

		c.JSON(http.StatusOK, gin.H{"lectures": lectures})
	}
}

// GetHandler は GET /api/lectures/:id のハンドラーを返します。
func GetHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "authentication required",
			})
			return
		}

		id := strings.TrimSpace(c.Param("id"))
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "INVALID_INPUT",
				"message": "lecture id is required",
			})
			return
		}

		lec, err := store.FindByID(c.Request.Context(), id, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "failed to load lecture",
			})
			return
		}
		if lec == nil {
			c.JSON(http.StatusNotFound, gin.H{
				"code":    "LECTURE_NOT_FOUND",
				"message": "lecture not found",
			})
			return
		}

		c.JSON(http.StatusOK, lec)
	}
}
