// file: internals/features/checkout/service/checkout_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	logSvc "coursedesk_backend/internals/features/audit/logs/service"
	classModel "coursedesk_backend/internals/features/catalog/classes/model"
	courseModel "coursedesk_backend/internals/features/catalog/courses/model"
	dto "coursedesk_backend/internals/features/checkout/dto"
	"coursedesk_backend/internals/features/integrations/email"
	"coursedesk_backend/internals/features/integrations/stripegw"
	helper "coursedesk_backend/internals/helpers"
	"coursedesk_backend/internals/helpers/logger"
)

const currencyUSD = "usd"

var ErrNoPrice = errors.New("class has no registration fee and course has no Stripe product")

type Service struct {
	DB                 *gorm.DB
	Processor          PaymentProcessor
	Mailer             *email.Mailer // nil disables emails
	AdminNotifyEmail   string
	InvoiceNumberFloor int64
	Now                func() time.Time
}

func NewService(db *gorm.DB, p PaymentProcessor, m *email.Mailer, adminEmail string, floor int64) *Service {
	return &Service{
		DB:                 db,
		Processor:          p,
		Mailer:             m,
		AdminNotifyEmail:   adminEmail,
		InvoiceNumberFloor: floor,
		Now:                time.Now,
	}
}

// ResolveAmount picks what the buyer pays today: the class registration fee
// when set, otherwise the default price of the course's Stripe product.
func ResolveAmount(ctx context.Context, cls classModel.ClassModel, course courseModel.CourseModel, p PaymentProcessor) (int64, error) {
	if cls.ClassRegistrationFeeCents != nil && *cls.ClassRegistrationFeeCents > 0 {
		return *cls.ClassRegistrationFeeCents, nil
	}
	if course.CourseStripeProductID == nil || *course.CourseStripeProductID == "" || p == nil {
		return 0, ErrNoPrice
	}
	return p.DefaultPriceCents(ctx, *course.CourseStripeProductID)
}

// CreateIntent starts checkout for a published class.
func (s *Service) CreateIntent(ctx context.Context, req dto.CreateIntentRequest) (*dto.CreateIntentResponse, error) {
	if s.Processor == nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "payments are not configured")
	}

	var cls classModel.ClassModel
	if err := s.DB.WithContext(ctx).
		Where("class_code = ? AND class_is_published = TRUE", req.ClassCode).
		Take(&cls).Error; err != nil {
		return nil, helper.FromDBError(err, "class")
	}
	var course courseModel.CourseModel
	if err := s.DB.WithContext(ctx).
		Where("course_code = ? AND course_is_active = TRUE", cls.ClassCourseCode).
		Take(&course).Error; err != nil {
		return nil, helper.FromDBError(err, "course")
	}

	amount, err := ResolveAmount(ctx, cls, course, s.Processor)
	if err != nil {
		if errors.Is(err, ErrNoPrice) || errors.Is(err, stripegw.ErrNoDefaultPrice) {
			return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "class is not available for online checkout")
		}
		return nil, fiber.NewError(fiber.StatusBadGateway, "could not resolve price")
	}
	if amount <= 0 {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "class is not available for online checkout")
	}

	meta := CheckoutMeta{
		ClassID:   cls.ClassID,
		ClassCode: cls.ClassCode,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}
	pi, err := s.Processor.CreatePaymentIntent(ctx, stripegw.PaymentIntentInput{
		AmountCents:  amount,
		Currency:     currencyUSD,
		ReceiptEmail: req.Email,
		Description:  fmt.Sprintf("Registration fee: %s (%s)", cls.ClassTitle, cls.ClassCode),
		Metadata:     meta.Encode(),
	})
	if err != nil {
		log := logger.FromContext(ctx)
		log.Error().Err(err).Str("class_code", cls.ClassCode).Msg("create payment intent failed")
		return nil, fiber.NewError(fiber.StatusBadGateway, "payment provider error")
	}

	return &dto.CreateIntentResponse{
		PaymentIntentID: pi.ID,
		ClientSecret:    pi.ClientSecret,
		AmountCents:     pi.AmountCents,
		Currency:        currencyUSD,
		ClassCode:       cls.ClassCode,
		ClassTitle:      cls.ClassTitle,
	}, nil
}

func (s *Service) audit(ctx context.Context, e logSvc.Entry) {
	if e.Actor == "" {
		e.Actor = "stripe"
	}
	logSvc.Record(ctx, s.DB, e)
}
