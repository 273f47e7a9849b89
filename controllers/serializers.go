package controllers

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/simatwa/tailoring-ms-api/models"
)

// Wire shapes for the /v1 surface. Field names and formats are a contract
// with the front-end. Decimal columns are rendered as JSON numbers.

const dateLayout = "2006-01-02"

// TokenResponse is returned by the token endpoints
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ProfileResponse is the authenticated user's own profile projection
type ProfileResponse struct {
	FirstName   *string           `json:"first_name"`
	LastName    *string           `json:"last_name"`
	PhoneNumber *string           `json:"phone_number"`
	Email       *string           `json:"email"`
	Location    *string           `json:"location"`
	Username    string            `json:"username"`
	DateOfBirth string            `json:"date_of_birth"`
	Gender      models.UserGender `json:"gender"`
	Profile     string            `json:"profile"`
	IsStaff     bool              `json:"is_staff"`
	DateJoined  time.Time         `json:"date_joined"`
}

func newProfileResponse(user *models.User) ProfileResponse {
	return ProfileResponse{
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		PhoneNumber: user.PhoneNumber,
		Email:       user.Email,
		Location:    user.Location,
		Username:    user.Username,
		DateOfBirth: user.DateOfBirth.Format(dateLayout),
		Gender:      user.Gender,
		Profile:     imageURL(user.Profile),
		IsStaff:     user.IsStaff,
		DateJoined:  user.DateJoined,
	}
}

// EditablePersonalData is the subset of the profile clients may change
type EditablePersonalData struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Location    *string `json:"location"`
}

// MeasurementResponse carries the full nine-field sizing profile
type MeasurementResponse struct {
	Chest         float64   `json:"chest"`
	Waist         float64   `json:"waist"`
	Hips          float64   `json:"hips"`
	Inseam        float64   `json:"inseam"`
	Neck          float64   `json:"neck"`
	SleeveLength  float64   `json:"sleeve_length"`
	ShoulderWidth float64   `json:"shoulder_width"`
	Thigh         float64   `json:"thigh"`
	Calf          float64   `json:"calf"`
	DateCreated   time.Time `json:"date_created"`
	DateUpdated   time.Time `json:"date_updated"`
}

func newMeasurementResponse(m *models.Measurement) MeasurementResponse {
	return MeasurementResponse{
		Chest:         m.Chest.InexactFloat64(),
		Waist:         m.Waist.InexactFloat64(),
		Hips:          m.Hips.InexactFloat64(),
		Inseam:        m.Inseam.InexactFloat64(),
		Neck:          m.Neck.InexactFloat64(),
		SleeveLength:  m.SleeveLength.InexactFloat64(),
		ShoulderWidth: m.ShoulderWidth.InexactFloat64(),
		Thigh:         m.Thigh.InexactFloat64(),
		Calf:          m.Calf.InexactFloat64(),
		DateCreated:   m.CreatedAt,
		DateUpdated:   m.UpdatedAt,
	}
}

// ShallowOrderResponse is the reduced projection used by the own-orders list
type ShallowOrderResponse struct {
	ID          uint               `json:"id"`
	ServiceName models.ServiceName `json:"service_name"`
	Quantity    int                `json:"quantity"`
	Charges     *float64           `json:"charges"`
	Status      models.OrderStatus `json:"status"`
}

func newShallowOrderResponse(order *models.Order) ShallowOrderResponse {
	return ShallowOrderResponse{
		ID:          order.ID,
		ServiceName: order.Service.Name,
		Quantity:    order.Quantity,
		Charges:     decimalPtrToFloat(order.Charges),
		Status:      order.Status,
	}
}

// OrderResponse is the full owner-facing projection of one order
type OrderResponse struct {
	ID             uint                `json:"id"`
	ServiceName    models.ServiceName  `json:"service_name"`
	Details        string              `json:"details"`
	MaterialType   models.MaterialType `json:"material_type"`
	FabricRequired bool                `json:"fabric_required"`
	Quantity       int                 `json:"quantity"`
	Colors         *string             `json:"colors"`
	Urgency        models.OrderUrgency `json:"urgency"`
	Charges        *float64            `json:"charges"`
	ChargesPaid    float64             `json:"charges_paid"`
	Status         models.OrderStatus  `json:"status"`
	ReferenceImage string              `json:"reference_image"`
	Picture        string              `json:"picture"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func newOrderResponse(order *models.Order) OrderResponse {
	return OrderResponse{
		ID:             order.ID,
		ServiceName:    order.Service.Name,
		Details:        order.Details,
		MaterialType:   order.MaterialType,
		FabricRequired: order.FabricRequired,
		Quantity:       order.Quantity,
		Colors:         order.Colors,
		Urgency:        order.Urgency,
		Charges:        decimalPtrToFloat(order.Charges),
		ChargesPaid:    order.ChargesPaid.InexactFloat64(),
		Status:         order.Status,
		ReferenceImage: imageURLPtr(order.ReferenceImage, ""),
		Picture:        imageURL(order.Picture),
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
}

// ShallowCompletedOrderResponse is one public latest-work listing entry
type ShallowCompletedOrderResponse struct {
	ID      uint   `json:"id"`
	Picture string `json:"picture"`
}

// CompletedOrderResponse is the public projection of one piece of
// completed work
type CompletedOrderResponse struct {
	ID             uint                `json:"id"`
	Picture        string              `json:"picture"`
	ServiceName    models.ServiceName  `json:"service_name"`
	Details        string              `json:"details"`
	MaterialType   models.MaterialType `json:"material_type"`
	FabricRequired bool                `json:"fabric_required"`
	ReferenceImage string              `json:"reference_image"`
	Charges        float64             `json:"charges"`
	CreatedAt      time.Time           `json:"created_at"`
}

func newCompletedOrderResponse(order *models.Order) CompletedOrderResponse {
	var charges float64
	if order.Charges != nil {
		charges = order.Charges.InexactFloat64()
	}
	return CompletedOrderResponse{
		ID:             order.ID,
		Picture:        imageURL(order.Picture),
		ServiceName:    order.Service.Name,
		Details:        order.Details,
		MaterialType:   order.MaterialType,
		FabricRequired: order.FabricRequired,
		ReferenceImage: imageURLPtr(order.ReferenceImage, models.DefaultOrderPicture),
		Charges:        charges,
		CreatedAt:      order.CreatedAt,
	}
}

// ServiceResponse is one public catalog entry
type ServiceResponse struct {
	Name          models.ServiceName `json:"name"`
	Description   string             `json:"description"`
	Picture       string             `json:"picture"`
	StartingPrice float64            `json:"starting_price"`
	EndingPrice   float64            `json:"ending_price"`
}

func newServiceResponse(service *models.Service) ServiceResponse {
	return ServiceResponse{
		Name:          service.Name,
		Description:   service.Description,
		Picture:       imageURL(service.Picture),
		StartingPrice: service.StartingPrice.InexactFloat64(),
		EndingPrice:   service.EndingPrice.InexactFloat64(),
	}
}

// FeedbackSender is the public snapshot of who gave a testimonial,
// read from the sender row at serialization time
type FeedbackSender struct {
	FirstName *string           `json:"first_name"`
	LastName  *string           `json:"last_name"`
	Role      models.SenderRole `json:"role"`
	Profile   string            `json:"profile"`
}

// FeedbackResponse is one public testimonial
type FeedbackResponse struct {
	ID        uint                `json:"id"`
	Message   string              `json:"message"`
	Rate      models.FeedbackRate `json:"rate"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	User      FeedbackSender      `json:"user"`
}

func newFeedbackResponse(feedback *models.ServiceFeedback) FeedbackResponse {
	return FeedbackResponse{
		ID:        feedback.ID,
		Message:   feedback.Message,
		Rate:      feedback.Rate,
		CreatedAt: feedback.CreatedAt,
		UpdatedAt: feedback.UpdatedAt,
		User: FeedbackSender{
			FirstName: feedback.Sender.FirstName,
			LastName:  feedback.Sender.LastName,
			Role:      feedback.Role,
			Profile:   imageURL(feedback.Sender.Profile),
		},
	}
}

// AboutResponse is the public business information projection
type AboutResponse struct {
	Name        string  `json:"name"`
	ShortName   string  `json:"short_name"`
	Details     string  `json:"details"`
	Slogan      string  `json:"slogan"`
	Address     string  `json:"address"`
	FoundedIn   string  `json:"founded_in"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Facebook    *string `json:"facebook"`
	Twitter     *string `json:"twitter"`
	LinkedIn    *string `json:"linkedin"`
	Instagram   *string `json:"instagram"`
	TikTok      *string `json:"tiktok"`
	YouTube     *string `json:"youtube"`
	Logo        string  `json:"logo"`
	Wallpaper   string  `json:"wallpaper"`
}

func newAboutResponse(about *models.About) AboutResponse {
	return AboutResponse{
		Name:        about.Name,
		ShortName:   about.ShortName,
		Details:     about.Details,
		Slogan:      about.Slogan,
		Address:     about.Address,
		FoundedIn:   about.FoundedIn.Format(dateLayout),
		Email:       about.Email,
		PhoneNumber: about.PhoneNumber,
		Facebook:    about.Facebook,
		Twitter:     about.Twitter,
		LinkedIn:    about.LinkedIn,
		Instagram:   about.Instagram,
		TikTok:      about.TikTok,
		YouTube:     about.YouTube,
		Logo:        imageURL(about.Logo),
		Wallpaper:   imageURL(about.Wallpaper),
	}
}

// FAQResponse is one public FAQ entry
type FAQResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func decimalPtrToFloat(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}
