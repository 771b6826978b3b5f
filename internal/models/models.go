package models

import (
	"time"
)

// Catalog entities carry an IsActive flag instead of being physically
// deleted, so order history keeps resolving after a product is retired.

type Category struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null"                 json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null"     json:"slug"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	IsActive    bool      `gorm:"default:true"             json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type Brand struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null"     json:"slug"`
	LogoURL   string    `json:"logo_url"`
	IsActive  bool      `gorm:"default:true"             json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"not null"                 json:"name"`
	Slug          string    `gorm:"uniqueIndex;not null"     json:"slug"`
	Description   string    `json:"description"`
	Price         float64   `gorm:"not null"                 json:"price"`
	OriginalPrice float64   `json:"original_price"`
	Stock         uint      `gorm:"default:0"                json:"stock"`
	ImageURL      string    `json:"image_url"`
	CategoryID    uint      `gorm:"index"                    json:"category_id"`
	BrandID       uint      `gorm:"index"                    json:"brand_id"`
	Condition     string    `json:"condition"`
	IsFeatured    bool      `gorm:"default:false"            json:"is_featured"`
	IsThrift      bool      `gorm:"default:false"            json:"is_thrift"`
	IsOriginal    bool      `gorm:"default:false"            json:"is_original"`
	IsActive      bool      `gorm:"default:true"             json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
}

type CartItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement"   json:"id"`
	UserID    uint `gorm:"index;not null"             json:"user_id"`
	ProductID uint `gorm:"not null"                   json:"product_id"`
	Quantity  uint `gorm:"default:1;check:quantity>0" json:"quantity"`
}

type WishlistItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                       json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_wishlist_user_product;not null" json:"user_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_wishlist_user_product;not null" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID              uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber     string      `gorm:"uniqueIndex;not null"     json:"order_number"`
	UserID          uint        `gorm:"index;not null"           json:"user_id"`
	Status          string      `gorm:"not null"                 json:"status"`
	Subtotal        float64     `gorm:"not null"                 json:"subtotal"`
	Tax             float64     `json:"tax"`
	Shipping        float64     `json:"shipping"`
	Discount        float64     `json:"discount"`
	Total           float64     `gorm:"not null"                 json:"total"`
	CouponCode      string      `json:"coupon_code"`
	ShippingAddress string      `json:"shipping_address"`
	PaymentMethod   string      `json:"payment_method"`
	PaymentStatus   string      `json:"payment_status"`
	PaymentRef      string      `json:"payment_ref"`
	Items           []OrderItem `gorm:"foreignKey:OrderID"       json:"items,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderItem snapshots name and price at purchase time; later product edits
// must not rewrite order history.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     uint    `gorm:"index;not null"           json:"order_id"`
	ProductID   uint    `gorm:"not null"                 json:"product_id"`
	ProductName string  `gorm:"not null"                 json:"product_name"`
	Price       float64 `gorm:"not null"                 json:"price"`
	Quantity    uint    `gorm:"not null"                 json:"quantity"`
}

const (
	CouponTypePercent = "percent"
	CouponTypeFixed   = "fixed"
)

type Coupon struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Code       string     `gorm:"uniqueIndex;not null"     json:"code"`
	Type       string     `gorm:"not null"                 json:"type"`
	Value      float64    `gorm:"not null"                 json:"value"`
	MinOrder   float64    `json:"min_order"`
	UsageLimit uint       `json:"usage_limit"`
	UsedCount  uint       `gorm:"default:0"                json:"used_count"`
	ExpiresAt  *time.Time `json:"expires_at"`
	IsActive   bool       `gorm:"default:true"             json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
}

type Banner struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `gorm:"not null"                 json:"image_url"`
	LinkURL   string    `json:"link_url"`
	Position  int       `gorm:"default:0"                json:"position"`
	IsActive  bool      `gorm:"default:true"             json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type Popup struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	ImageURL  string     `json:"image_url"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
	IsActive  bool       `gorm:"default:true"             json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}

type ContactMessage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	Email     string    `gorm:"not null"                 json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `gorm:"not null"                 json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type AdminUser struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Email          string     `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash   string     `gorm:"not null"                 json:"-"`
	Name           string     `json:"name"`
	Role           string     `gorm:"default:admin"            json:"role"`
	TOTPSecret     string     `gorm:"column:totp_secret"       json:"-"`
	TOTPEnabled    bool       `gorm:"column:totp_enabled;default:false" json:"totp_enabled"`
	FailedAttempts uint       `gorm:"default:0"                json:"-"`
	LockedUntil    *time.Time `json:"-"`
	LastLoginAt    *time.Time `json:"last_login_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

type AuditLog struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AdminID    uint      `gorm:"index;not null"           json:"admin_id"`
	AdminEmail string    `json:"admin_email"`
	Action     string    `gorm:"not null"                 json:"action"`
	EntityType string    `gorm:"index"                    json:"entity_type"`
	EntityID   uint      `json:"entity_id"`
	Details    string    `gorm:"type:text"                json:"details"`
	IP         string    `json:"ip"`
	UserAgent  string    `json:"user_agent"`
	CreatedAt  time.Time `json:"created_at"`
}

// Settings tables are singletons, one row each, created on first read.
// Secret columns are tagged json:"-" so a model can never leak them even
// outside the masked DTOs.

type PaymentSettings struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	StripePublicKey   string    `json:"stripe_public_key"`
	StripeSecretKey   string    `json:"-"`
	RazorpayKeyID     string    `json:"razorpay_key_id"`
	RazorpayKeySecret string    `json:"-"`
	CODEnabled        bool      `gorm:"column:cod_enabled;default:true" json:"cod_enabled"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type IntegrationSettings struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	SendGridAPIKey string    `gorm:"column:sendgrid_api_key" json:"-"`
	FromEmail      string    `json:"from_email"`
	GeminiAPIKey   string    `gorm:"column:gemini_api_key"   json:"-"`
	OpenAIAPIKey   string    `gorm:"column:openai_api_key"   json:"-"`
	TwilioSID      string    `gorm:"column:twilio_sid"       json:"-"`
	TwilioToken    string    `json:"-"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type AnalyticsSettings struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	GAMeasurementID string    `gorm:"column:ga_measurement_id" json:"ga_measurement_id"`
	MetaPixelID     string    `gorm:"column:meta_pixel_id"     json:"meta_pixel_id"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// All returns every model for AutoMigrate.
func All() []any {
	return []any{
		&Category{}, &Brand{}, &Product{}, &User{},
		&CartItem{}, &WishlistItem{}, &Order{}, &OrderItem{},
		&Coupon{}, &Banner{}, &Popup{}, &ContactMessage{},
		&AdminUser{}, &AuditLog{},
		&PaymentSettings{}, &IntegrationSettings{}, &AnalyticsSettings{},
	}
}
