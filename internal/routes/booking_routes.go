package routes

import (
	"lightpath/internal/controllers"
	"lightpath/internal/middleware"

	"github.com/gin-gonic/gin"
)

// BookingRoutes exposes the booking ledger plus its dependents,
// tickets and payments.
func BookingRoutes(r *gin.Engine) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.RequireAuth())
	{
		bookings.GET("", controllers.ListBookings)
		bookings.POST("", controllers.CreateBooking)
		bookings.GET("/:id", controllers.GetBooking)
		bookings.PATCH("/:id", controllers.UpdateBooking)
		bookings.DELETE("/:id", controllers.DeleteBooking)
	}

	tickets := r.Group("/tickets")
	tickets.Use(middleware.RequireAuth())
	{
		tickets.GET("", controllers.ListTickets)
		tickets.POST("", controllers.IssueTicket)
		tickets.GET("/:id", controllers.GetTicket)
		tickets.PATCH("/:id", controllers.UpdateTicket)
		tickets.DELETE("/:id", controllers.DeleteTicket)
	}

	payments := r.Group("/payments")
	payments.Use(middleware.RequireAuth())
	{
		payments.GET("", controllers.ListPayments)
		payments.POST("", controllers.RecordPayment)
		payments.GET("/:id", controllers.GetPayment)
		payments.PATCH("/:id", controllers.UpdatePayment)
		payments.DELETE("/:id", controllers.DeletePayment)
	}
}
