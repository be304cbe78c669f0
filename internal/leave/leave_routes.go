package leave

import (
	"github.com/kamepallinandini997/leave-management-poc/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
) {
	r.POST("/employees/leaves", middleware.Idempotency(rdb), handler.Apply)
	r.GET("/employees/:emp_id/leaves", handler.GetByEmployee)

	leaves := r.Group("/leaves")
	{
		leaves.GET("/:leave_id", handler.GetByID)
		leaves.PUT("/:leave_id", handler.UpdateStatus)
	}
}
