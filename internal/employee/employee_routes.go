package employee

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
	employees := r.Group("/employees")
	{
		employees.GET("", handler.GetAll)
		employees.GET("/:emp_id", handler.GetByID)
		employees.POST("", middleware.Idempotency(rdb), handler.Create)
	}
}
