package repository

// Storage keys. These names are shared with earlier app installs and must
// not change.
const (
	KeyUserCarts             = "USER_CARTS"
	KeySelectedCartID        = "SELECTED_CART_ID"
	KeyCartStorageMigrated   = "CART_STORAGE_MIGRATED_V1"
	KeyGuestCart             = "guest_cart"
	KeyCheckoutAddress       = "checkout_address"
	KeyCheckoutPaymentMethod = "checkout_payment_method"
	KeyProfilePaymentMethods = "profile_payment_methods"
	KeyPaymentMethods        = "payment_methods"
	KeyAddresses             = "addresses"
)

// UserDataKeys are cleared when a different user signs in.
var UserDataKeys = []string{
	KeySelectedCartID,
	KeyCheckoutAddress,
	KeyCheckoutPaymentMethod,
	KeyProfilePaymentMethods,
	KeyPaymentMethods,
	KeyAddresses,
}

// LegacyCartKeys are discarded once by the cart storage migration.
var LegacyCartKeys = []string{
	KeyUserCarts,
	KeySelectedCartID,
	KeyGuestCart,
}
