package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/domain/validation"

	"github.com/shopspring/decimal"
)

// Backend payment type id for mobile-money wallets.
const mobileMoneyPaymentTypeID = 4

// remoteID accepts the backend's numeric ids as well as string ids.
type remoteID string

func (id *remoteID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""

		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = remoteID(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = remoteID(n.String())

	return nil
}

// numericID converts a local string id back into the backend's numeric id.
func numericID(field, id string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return 0, domainerrors.ErrValidationFailed.WithDetails(field + " must be numeric, got " + strconv.Quote(id))
	}

	return n, nil
}

type userDTO struct {
	ID        remoteID `json:"id"`
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	Username  string   `json:"username"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Role      string   `json:"role"`
}

func (d userDTO) toEntity() *entity.User {
	name := d.Name
	if name == "" {
		name = strings.TrimSpace(d.FirstName + " " + d.LastName)
	}
	if name == "" {
		name = d.Username
	}

	return &entity.User{
		ID:    string(d.ID),
		Email: d.Email,
		Name:  name,
		Role:  entity.ParseRole(d.Role),
	}
}

type shippingOptionDTO struct {
	ID       remoteID        `json:"id"`
	Type     string          `json:"type"`
	Duration string          `json:"duration"`
	Price    decimal.Decimal `json:"price"`
}

type productDTO struct {
	ID              remoteID            `json:"id"`
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	Price           decimal.Decimal     `json:"price"`
	OriginalPrice   decimal.Decimal     `json:"originalPrice"`
	ProductImage    string              `json:"productImage"`
	Condition       string              `json:"condition"`
	CategoryID      remoteID            `json:"categoryId"`
	ShippingOptions []shippingOptionDTO `json:"shippingOptions"`
}

// defaultShippingOptions is offered when the product service returns none.
var defaultShippingOptions = []entity.ProductShippingOption{
	{ID: "1", Type: "Standard", Duration: "5-10 days", Price: decimal.Zero},
	{ID: "2", Type: "Express", Duration: "2-5 days", Price: decimal.RequireFromString("9.99")},
}

func (d productDTO) toEntity() *entity.Product {
	product := &entity.Product{
		ID:            string(d.ID),
		Name:          d.Name,
		Description:   d.Description,
		Price:         d.Price,
		OriginalPrice: d.OriginalPrice,
		Image:         d.ProductImage,
		Condition:     d.Condition,
		CategoryID:    string(d.CategoryID),
	}

	for _, option := range d.ShippingOptions {
		product.ShippingOptions = append(product.ShippingOptions, entity.ProductShippingOption{
			ID:       string(option.ID),
			Type:     option.Type,
			Duration: option.Duration,
			Price:    option.Price,
		})
	}
	if len(product.ShippingOptions) == 0 {
		product.ShippingOptions = append(product.ShippingOptions, defaultShippingOptions...)
	}

	return product
}

type paymentMethodDTO struct {
	ID            remoteID `json:"id"`
	PaymentTypeID int      `json:"paymentTypeId"`
	Provider      string   `json:"provider"`
	AccountNumber string   `json:"accountNumber"`
	IsDefault     bool     `json:"isDefault"`
	ExpiryDate    string   `json:"expiryDate"`
}

// toEntity keeps only the last four digits of card numbers.
func (d paymentMethodDTO) toEntity() entity.PaymentMethod {
	method := entity.PaymentMethod{
		ID:        string(d.ID),
		Last4:     validation.Last4(d.AccountNumber),
		IsDefault: d.IsDefault,
	}

	if d.PaymentTypeID == mobileMoneyPaymentTypeID {
		method.Type = entity.PaymentTypeMobileMoney
		method.Network = entity.MobileNetwork(d.Provider)
		method.Phone = d.AccountNumber

		return method
	}

	method.Type = entity.PaymentType(d.Provider)
	if !entity.IsValidPaymentType(method.Type) || method.Type == entity.PaymentTypeMobileMoney {
		method.Type = validation.DetectCardType(d.AccountNumber)
	}
	method.Expiry = expiryFromDate(d.ExpiryDate)

	return method
}

// expiryFromDate turns the backend's "YYYY-MM-DD" expiry into "MM-YY".
func expiryFromDate(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return ""
	}

	return t.Format("01-06")
}

type addressDTO struct {
	ID          remoteID `json:"id"`
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	Street      string   `json:"street"`
	City        string   `json:"city"`
	Region      string   `json:"region"`
	PostalCode  string   `json:"postalCode"`
	ZipCode     string   `json:"zipCode"`
	Country     string   `json:"country"`
	CountryID   int64    `json:"countryId"`
	CountryCode string   `json:"countryCode"`
	IsDefault   bool     `json:"isDefault"`
}

func (d addressDTO) toEntity() entity.Address {
	postal := d.PostalCode
	if postal == "" {
		postal = d.ZipCode
	}

	return entity.Address{
		ID:          string(d.ID),
		Name:        d.Name,
		Phone:       d.Phone,
		Street:      d.Street,
		City:        d.City,
		Region:      d.Region,
		PostalCode:  postal,
		Country:     d.Country,
		CountryID:   d.CountryID,
		CountryCode: d.CountryCode,
		IsDefault:   d.IsDefault,
	}
}

type orderLineDTO struct {
	ID            remoteID        `json:"id,omitempty"`
	ProductItemID remoteID        `json:"productItemId"`
	Quantity      int             `json:"qty"`
	Price         decimal.Decimal `json:"price"`
}

type orderDTO struct {
	ID               remoteID        `json:"id"`
	OrderID          remoteID        `json:"orderId"`
	UserID           remoteID        `json:"userId"`
	OrderDate        string          `json:"orderDate"`
	PaymentMethodID  remoteID        `json:"paymentMethodId"`
	ShippingAddress  string          `json:"shippingAddress"`
	ShippingMethodID remoteID        `json:"shippingMethodId"`
	OrderTotal       decimal.Decimal `json:"orderTotal"`
	OrderStatus      string          `json:"orderStatus"`
	OrderLines       []orderLineDTO  `json:"orderLines"`
}

func (d orderDTO) toEntity() entity.Order {
	id := d.ID
	if id == "" {
		id = d.OrderID
	}

	order := entity.Order{
		ID:               string(id),
		UserID:           string(d.UserID),
		OrderDate:        parseRemoteTime(d.OrderDate),
		PaymentMethodID:  string(d.PaymentMethodID),
		ShippingAddress:  d.ShippingAddress,
		ShippingMethodID: string(d.ShippingMethodID),
		Total:            d.OrderTotal,
		Status:           d.OrderStatus,
	}
	for _, line := range d.OrderLines {
		order.Lines = append(order.Lines, entity.OrderLine{
			ID:            string(line.ID),
			ProductItemID: string(line.ProductItemID),
			Quantity:      line.Quantity,
			Price:         line.Price,
		})
	}

	return order
}

type statusHistoryDTO struct {
	ID        remoteID `json:"id"`
	OrderID   remoteID `json:"orderId"`
	StatusID  int      `json:"statusId"`
	ChangedAt string   `json:"changedAt"`
}

func (d statusHistoryDTO) toEntity() entity.OrderStatusHistory {
	return entity.OrderStatusHistory{
		ID:        string(d.ID),
		OrderID:   string(d.OrderID),
		StatusID:  d.StatusID,
		ChangedAt: parseRemoteTime(d.ChangedAt),
	}
}

// remoteTimeLayouts covers the backend's offset and local date-time forms.
var remoteTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	time.DateTime,
	time.DateOnly,
}

func parseRemoteTime(value string) time.Time {
	for _, layout := range remoteTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}

	return time.Time{}
}

type createOrderLineRequest struct {
	ProductItemID int64       `json:"productItemId"`
	Quantity      int         `json:"qty"`
	Price         json.Number `json:"price"`
}

// createOrderRequest sends amounts as JSON numbers, the form the order service parses.
type createOrderRequest struct {
	UserID           int64                    `json:"userId"`
	PaymentMethodID  int64                    `json:"paymentMethodId"`
	ShippingAddress  string                   `json:"shippingAddress"`
	ShippingMethodID int64                    `json:"shippingMethodId"`
	OrderTotal       json.Number              `json:"orderTotal"`
	OrderLines       []createOrderLineRequest `json:"orderLines"`
}

func newCreateOrderRequest(req service.CreateOrderRequest) (*createOrderRequest, error) {
	userID, err := numericID("userId", req.UserID)
	if err != nil {
		return nil, err
	}
	paymentMethodID, err := numericID("paymentMethodId", req.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	shippingMethodID, err := numericID("shippingMethodId", req.ShippingMethodID)
	if err != nil {
		return nil, err
	}

	body := &createOrderRequest{
		UserID:           userID,
		PaymentMethodID:  paymentMethodID,
		ShippingAddress:  req.ShippingAddress,
		ShippingMethodID: shippingMethodID,
		OrderTotal:       json.Number(req.Total.StringFixed(2)),
		OrderLines:       make([]createOrderLineRequest, 0, len(req.Lines)),
	}
	for _, line := range req.Lines {
		productItemID, err := numericID("productItemId", line.ProductItemID)
		if err != nil {
			return nil, err
		}
		body.OrderLines = append(body.OrderLines, createOrderLineRequest{
			ProductItemID: productItemID,
			Quantity:      line.Quantity,
			Price:         json.Number(line.Price.StringFixed(2)),
		})
	}

	return body, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// productPage accepts both a bare array and a paged {"content": [...]} body.
type productPage []productDTO

func (p *productPage) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var page struct {
			Content []productDTO `json:"content"`
		}
		if err := json.Unmarshal(data, &page); err != nil {
			return err
		}
		*p = page.Content

		return nil
	}

	var products []productDTO
	if err := json.Unmarshal(data, &products); err != nil {
		return err
	}
	*p = products

	return nil
}

func (p productPage) toEntities() []entity.Product {
	products := make([]entity.Product, 0, len(p))
	for _, dto := range p {
		products = append(products, *dto.toEntity())
	}

	return products
}

// Backend payment type id for cards.
const cardPaymentTypeID = 1

type paymentMethodRequest struct {
	ID            *int64 `json:"id,omitempty"`
	UserID        int64  `json:"userId"`
	PaymentTypeID int    `json:"paymentTypeId"`
	Provider      string `json:"provider"`
	AccountNumber string `json:"accountNumber"`
	ExpiryDate    string `json:"expiryDate,omitempty"`
	IsDefault     bool   `json:"isDefault"`
}

func newPaymentMethodRequest(req service.SavePaymentMethodRequest) (*paymentMethodRequest, error) {
	userID, err := numericID("userId", req.UserID)
	if err != nil {
		return nil, err
	}

	body := &paymentMethodRequest{
		UserID:        userID,
		AccountNumber: req.AccountNumber,
		IsDefault:     req.Method.IsDefault,
	}
	if req.ID != "" {
		id, err := numericID("id", req.ID)
		if err != nil {
			return nil, err
		}
		body.ID = &id
	}

	if req.Method.Type == entity.PaymentTypeMobileMoney {
		body.PaymentTypeID = mobileMoneyPaymentTypeID
		body.Provider = string(req.Method.Network)
		if body.AccountNumber == "" {
			body.AccountNumber = req.Method.Phone
		}

		return body, nil
	}

	body.PaymentTypeID = cardPaymentTypeID
	body.Provider = string(req.Method.Type)
	if body.AccountNumber == "" {
		body.AccountNumber = req.Method.Last4
	}
	body.ExpiryDate = dateFromExpiry(req.Method.Expiry)

	return body, nil
}

// dateFromExpiry turns "MM-YY" into the backend's "YYYY-MM-01".
func dateFromExpiry(expiry string) string {
	t, err := time.Parse("01-06", expiry)
	if err != nil {
		return ""
	}

	return t.Format(time.DateOnly)
}

type addressRequest struct {
	ID          *int64 `json:"id,omitempty"`
	UserID      *int64 `json:"userId,omitempty"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Street      string `json:"street"`
	City        string `json:"city"`
	Region      string `json:"region"`
	PostalCode  string `json:"postalCode"`
	CountryID   int64  `json:"countryId,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
	IsDefault   bool   `json:"isDefault"`
}

func newAddressRequest(userID string, address entity.Address) (*addressRequest, error) {
	body := &addressRequest{
		Name:        address.Name,
		Phone:       address.Phone,
		Street:      address.Street,
		City:        address.City,
		Region:      address.Region,
		PostalCode:  address.PostalCode,
		CountryID:   address.CountryID,
		CountryCode: address.CountryCode,
		IsDefault:   address.IsDefault,
	}
	if address.ID != "" {
		id, err := numericID("id", address.ID)
		if err != nil {
			return nil, err
		}
		body.ID = &id
	}
	if userID != "" {
		id, err := numericID("userId", userID)
		if err != nil {
			return nil, err
		}
		body.UserID = &id
	}

	return body, nil
}

// addressLinkRequest sends ids as strings, the form the address service binds.
type addressLinkRequest struct {
	UserID    string `json:"userId"`
	AddressID string `json:"addressId"`
	IsDefault bool   `json:"isDefault"`
}

type cartItemDTO struct {
	ID            remoteID `json:"id"`
	ProductItemID remoteID `json:"productItemId"`
	Size          *string  `json:"size"`
	Quantity      int      `json:"quantity"`
}

type cartDTO struct {
	ID    remoteID      `json:"id"`
	Name  string        `json:"name"`
	Items []cartItemDTO `json:"items"`
}

func (d cartDTO) toEntity() entity.Cart {
	cart := entity.Cart{
		ID:      string(d.ID),
		Name:    d.Name,
		Items:   make([]entity.CartItem, 0, len(d.Items)),
		Invited: []string{},
		Synced:  true,
	}
	for _, item := range d.Items {
		line := entity.CartItem{
			ID:            string(item.ID),
			ProductItemID: string(item.ProductItemID),
			Quantity:      entity.ClampQuantity(item.Quantity),
		}
		if item.Size != nil {
			line.Size = *item.Size
		}
		cart.Items = append(cart.Items, line)
	}

	return cart
}

type createCartRequest struct {
	Name      string `json:"name"`
	CreatedBy string `json:"createdBy"`
}

type guestCartItemDTO struct {
	ProductItemID int64   `json:"productItemId"`
	Quantity      int     `json:"quantity"`
	Size          *string `json:"size"`
}

type guestCartDTO struct {
	Name  string             `json:"name"`
	Items []guestCartItemDTO `json:"items"`
}

type mergeCartsRequest struct {
	UserEmail  string         `json:"userEmail"`
	GuestCarts []guestCartDTO `json:"guestCarts"`
}

// newMergeCartsRequest drops lines whose product id the cart service cannot store.
func newMergeCartsRequest(email string, carts []entity.Cart) *mergeCartsRequest {
	body := &mergeCartsRequest{
		UserEmail:  email,
		GuestCarts: make([]guestCartDTO, 0, len(carts)),
	}
	for _, cart := range carts {
		guest := guestCartDTO{Name: cart.Name, Items: []guestCartItemDTO{}}
		for _, item := range cart.Items {
			productID := item.ProductItemID
			if productID == "" {
				productID = item.ID
			}
			id, err := strconv.ParseInt(productID, 10, 64)
			if err != nil {
				continue
			}

			line := guestCartItemDTO{ProductItemID: id, Quantity: item.Quantity}
			if item.Size != "" {
				size := item.Size
				line.Size = &size
			}
			guest.Items = append(guest.Items, line)
		}
		body.GuestCarts = append(body.GuestCarts, guest)
	}

	return body
}

func orderLinesToEntities(dtos []orderLineDTO) []entity.OrderLine {
	lines := make([]entity.OrderLine, 0, len(dtos))
	for _, line := range dtos {
		lines = append(lines, entity.OrderLine{
			ID:            string(line.ID),
			ProductItemID: string(line.ProductItemID),
			Quantity:      line.Quantity,
			Price:         line.Price,
		})
	}

	return lines
}
