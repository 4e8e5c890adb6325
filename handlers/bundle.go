package handlers

import (
	fileRepo "gobarber/database/repository/file"
	userRepo "gobarber/database/repository/user"
	"gobarber/services/booking"
	"gobarber/services/notification"
	"gobarber/services/storage"
	"gobarber/services/user"
)

// HandlerBundle groups all endpoint handlers and their collaborators.
type HandlerBundle struct {
	UserService         user.UserService
	AppointmentService  booking.AppointmentService
	NotificationService notification.NotificationService
	Storage             storage.StorageService

	// UserRepo backs the auth middleware's existence check.
	UserRepo userRepo.UserRepository
	FileRepo fileRepo.FileRepository
}
