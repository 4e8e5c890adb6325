package utils

import (
	"context"

	"gobarber/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FCMClient is nil when no Firebase credentials are configured; push
// delivery is then skipped entirely.
var FCMClient *messaging.Client

// FirebaseInit initializes the Firebase App and Messaging client. Pushes are
// best-effort, so a missing or broken credential file only logs a warning.
func FirebaseInit() {
	logger := GetLogger()

	credFile := config.AppConfig.FirebaseCredentialsFile
	if credFile == "" {
		logger.Warn("firebase: no credentials file configured, push notifications disabled")
		return
	}

	ctx := context.Background()
	opt := option.WithCredentialsFile(credFile)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		logger.Sugar().Warnf("firebase: error initializing app, push notifications disabled: %v", err)
		return
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		logger.Sugar().Warnf("firebase: error getting Messaging client, push notifications disabled: %v", err)
		return
	}

	FCMClient = client
}
