package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("user"))
	landlordMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("landlord"))
	adminAuthMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("admin"))

	mux := pat.New()

	// Auth
	mux.Post("/user/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/user/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/user/refresh", standardMiddleware.ThenFunc(app.userHandler.Refresh))
	mux.Post("/user/logout", authMiddleware.ThenFunc(app.userHandler.Logout))
	mux.Post("/user/request_reset", standardMiddleware.ThenFunc(app.userHandler.RequestPasswordReset))
	mux.Post("/user/reset_password", standardMiddleware.ThenFunc(app.userHandler.ConfirmPasswordReset))

	// Users
	mux.Get("/user/me", authMiddleware.ThenFunc(app.userHandler.GetMe))
	mux.Put("/user/me", authMiddleware.ThenFunc(app.userHandler.UpdateUser))
	mux.Post("/user/change_password", authMiddleware.ThenFunc(app.userHandler.ChangePassword))
	mux.Post("/user/fcm_token", authMiddleware.ThenFunc(app.userHandler.SetFCMToken))
	mux.Get("/user/:id", authMiddleware.ThenFunc(app.userHandler.GetUserByID))
	mux.Del("/user/:id", authMiddleware.ThenFunc(app.userHandler.DeleteUser))

	// Listings
	mux.Post("/listing", landlordMiddleware.ThenFunc(app.listingHandler.CreateListing))
	mux.Get("/listing/feed", standardMiddleware.ThenFunc(app.listingHandler.GetFeed))
	mux.Get("/listing/search", standardMiddleware.ThenFunc(app.listingHandler.GetListings))
	mux.Get("/listing/nearby", standardMiddleware.ThenFunc(app.listingHandler.NearbyListings))
	mux.Get("/listing/my", landlordMiddleware.ThenFunc(app.listingHandler.GetMyListings))
	mux.Get("/listing/:id", standardMiddleware.ThenFunc(app.listingHandler.GetListingByID))
	mux.Put("/listing/:id", landlordMiddleware.ThenFunc(app.listingHandler.UpdateListing))
	mux.Post("/listing/:id/archive", landlordMiddleware.ThenFunc(app.listingHandler.ArchiveListing))
	mux.Del("/listing/:id", authMiddleware.ThenFunc(app.listingHandler.DeleteListing))

	// Favorites
	mux.Post("/listing/:id/favorite", authMiddleware.ThenFunc(app.listingHandler.AddToFavorites))
	mux.Del("/listing/:id/favorite", authMiddleware.ThenFunc(app.listingHandler.RemoveFromFavorites))
	mux.Get("/listing/:id/favorite", authMiddleware.ThenFunc(app.listingHandler.IsFavorite))
	mux.Get("/favorites", authMiddleware.ThenFunc(app.listingHandler.GetFavorites))

	// Bookings
	mux.Post("/booking/quote", authMiddleware.ThenFunc(app.bookingHandler.Quote))
	mux.Post("/booking", authMiddleware.ThenFunc(app.bookingHandler.CreateBooking))
	mux.Get("/booking/my", authMiddleware.ThenFunc(app.bookingHandler.GetMyBookings))
	mux.Get("/booking/:id", authMiddleware.ThenFunc(app.bookingHandler.GetBookingByID))
	mux.Post("/booking/accept", landlordMiddleware.ThenFunc(app.bookingHandler.AcceptBooking))
	mux.Post("/booking/reject", landlordMiddleware.ThenFunc(app.bookingHandler.RejectBooking))
	mux.Post("/booking/cancel", authMiddleware.ThenFunc(app.bookingHandler.CancelBooking))
	mux.Get("/listing/:id/bookings", landlordMiddleware.ThenFunc(app.bookingHandler.GetBookingsByListing))

	// Chats and messages
	mux.Post("/chat", authMiddleware.ThenFunc(app.chatHandler.StartChat))
	mux.Get("/chats", authMiddleware.ThenFunc(app.chatHandler.GetMyChats))
	mux.Del("/chat/:id", authMiddleware.ThenFunc(app.chatHandler.DeleteChat))
	mux.Post("/message", authMiddleware.ThenFunc(app.messageHandler.SendMessage))
	mux.Get("/chat/:id/messages", authMiddleware.ThenFunc(app.messageHandler.GetMessagesForChat))
	mux.Post("/chat/:id/read", authMiddleware.ThenFunc(app.messageHandler.MarkChatRead))
	mux.Get("/messages/unread", authMiddleware.ThenFunc(app.messageHandler.UnreadCount))
	mux.Del("/message/:id", authMiddleware.ThenFunc(app.messageHandler.DeleteMessage))
	mux.Get("/ws", http.HandlerFunc(app.WebSocketHandler))

	// Reviews
	mux.Post("/review", authMiddleware.ThenFunc(app.reviewHandler.CreateReview))
	mux.Get("/listing/:id/reviews", standardMiddleware.ThenFunc(app.reviewHandler.GetReviewsByListingID))
	mux.Put("/review/:id", authMiddleware.ThenFunc(app.reviewHandler.UpdateReview))
	mux.Del("/review/:id", authMiddleware.ThenFunc(app.reviewHandler.DeleteReview))

	// Reports
	mux.Post("/report", authMiddleware.ThenFunc(app.reportHandler.CreateReport))

	// Notifications
	mux.Get("/notifications", authMiddleware.ThenFunc(app.notificationHandler.GetMyNotifications))
	mux.Post("/notification/:id/read", authMiddleware.ThenFunc(app.notificationHandler.MarkRead))
	mux.Post("/notifications/read_all", authMiddleware.ThenFunc(app.notificationHandler.MarkAllRead))
	mux.Get("/notifications/unread", authMiddleware.ThenFunc(app.notificationHandler.UnreadCount))

	// Saved searches
	mux.Post("/saved_search", authMiddleware.ThenFunc(app.savedSearchHandler.CreateSavedSearch))
	mux.Get("/saved_searches", authMiddleware.ThenFunc(app.savedSearchHandler.GetMySavedSearches))
	mux.Put("/saved_search/:id", authMiddleware.ThenFunc(app.savedSearchHandler.UpdateSavedSearch))
	mux.Del("/saved_search/:id", authMiddleware.ThenFunc(app.savedSearchHandler.DeleteSavedSearch))

	// Places
	mux.Get("/listing/:id/places", standardMiddleware.ThenFunc(app.placesHandler.NearbyPlaces))

	// Payments
	mux.Post("/payment/invoice", authMiddleware.ThenFunc(app.paymentHandler.CreateInvoice))
	mux.Post("/payment/webhook", standardMiddleware.ThenFunc(app.paymentHandler.Webhook))
	mux.Get("/payments/my", authMiddleware.ThenFunc(app.paymentHandler.GetMyPayments))

	// Admin
	mux.Get("/admin/users", adminAuthMiddleware.ThenFunc(app.userHandler.GetAllUsers))
	mux.Post("/admin/user/:id/ban", adminAuthMiddleware.ThenFunc(app.userHandler.SetBanned))
	mux.Get("/admin/listings/pending", adminAuthMiddleware.ThenFunc(app.listingHandler.GetPendingListings))
	mux.Post("/admin/listing/:id/approve", adminAuthMiddleware.ThenFunc(app.listingHandler.ApproveListing))
	mux.Post("/admin/listing/:id/reject", adminAuthMiddleware.ThenFunc(app.listingHandler.RejectListing))
	mux.Get("/admin/reports", adminAuthMiddleware.ThenFunc(app.reportHandler.GetAllReports))
	mux.Get("/admin/listing/:id/reports", adminAuthMiddleware.ThenFunc(app.reportHandler.GetReportsByListingID))
	mux.Post("/admin/report/:id/resolve", adminAuthMiddleware.ThenFunc(app.reportHandler.ResolveReport))
	mux.Del("/admin/report/:id", adminAuthMiddleware.ThenFunc(app.reportHandler.DeleteReport))
	mux.Post("/admin/payment/refund", adminAuthMiddleware.ThenFunc(app.paymentHandler.Refund))

	return mux
}
