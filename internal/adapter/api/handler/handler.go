package handler

import (
	"gemora/internal/infrastructure/notify"
	"gemora/internal/usecase"
)

var (
	authHandler       *AuthHandler
	listingHandler    *ListingHandler
	paymentHandler    *PaymentHandler
	depositHandler    *DepositHandler
	onboardingHandler *OnboardingHandler
	fileHandler       *FileHandler
	devTokenHandler   *DevTokenHandler
	socketHandler     *SocketHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	listingUseCase *usecase.ListingUseCase,
	paymentUseCase *usecase.PaymentUseCase,
	depositUseCase *usecase.DepositUseCase,
	onboardingUseCase *usecase.OnboardingUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	listingHandler = NewListingHandler(listingUseCase, authUseCase)
	paymentHandler = NewPaymentHandler(paymentUseCase, authUseCase)
	depositHandler = NewDepositHandler(depositUseCase, authUseCase)
	onboardingHandler = NewOnboardingHandler(onboardingUseCase, authUseCase)
}

func SetupFileHandler(h *FileHandler) {
	fileHandler = h
}

func SetupDevTokenHandler(h *DevTokenHandler) {
	devTokenHandler = h
}

func SetupSocketHandler(hub *notify.Hub) {
	socketHandler = NewSocketHandler(hub)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetListingHandler() *ListingHandler {
	return listingHandler
}

func GetPaymentHandler() *PaymentHandler {
	return paymentHandler
}

func GetDepositHandler() *DepositHandler {
	return depositHandler
}

func GetOnboardingHandler() *OnboardingHandler {
	return onboardingHandler
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

func GetDevTokenHandler() *DevTokenHandler {
	return devTokenHandler
}

func GetSocketHandler() *SocketHandler {
	return socketHandler
}
