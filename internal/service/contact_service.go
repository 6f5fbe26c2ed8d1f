package service

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/bidmart-admin/internal/clock"
	"github.com/bidmart-admin/internal/constants"
	"github.com/bidmart-admin/internal/logger"
	"github.com/bidmart-admin/internal/models"
	"github.com/bidmart-admin/internal/repository"
	"github.com/bidmart-admin/internal/rules"
)

const (
	contactNameMaxLen    = 120
	contactSubjectMaxLen = 255
	contactMessageMaxLen = 5000
)

// ContactService 联系/反馈留言服务
type ContactService struct {
	repo  repository.ContactRepository
	clock clock.Clock
}

// NewContactService 创建留言服务
func NewContactService(repo repository.ContactRepository, clk clock.Clock) *ContactService {
	if clk == nil {
		clk = clock.Real{}
	}
	return &ContactService{repo: repo, clock: clk}
}

// ContactSubmitInput 前台提交留言输入
type ContactSubmitInput struct {
	Kind    string
	Name    string
	Email   string
	Subject string
	Message string
	Rating  int
}

// ContactListQuery 后台留言列表查询
type ContactListQuery struct {
	Page     int
	PageSize int
	Kind     string
	Status   string
	Search   string
}

// ContactUpdateInput 后台处理留言输入
type ContactUpdateInput struct {
	Status    string
	AdminNote *string
}

// contactTransitions 允许的处理状态流转；留言不能回到 new
var contactTransitions = map[string][]string{
	constants.ContactStatusNew:      {constants.ContactStatusRead, constants.ContactStatusReplied, constants.ContactStatusArchived},
	constants.ContactStatusRead:     {constants.ContactStatusReplied, constants.ContactStatusArchived},
	constants.ContactStatusReplied:  {constants.ContactStatusArchived},
	constants.ContactStatusArchived: {constants.ContactStatusRead},
}

// Submit 提交留言
func (s *ContactService) Submit(input ContactSubmitInput) (*models.ContactMessage, error) {
	kind := strings.ToLower(strings.TrimSpace(input.Kind))
	if kind == "" {
		kind = constants.ContactKindContact
	}
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)

	errs := rules.FieldErrors{}
	if kind != constants.ContactKindContact && kind != constants.ContactKindFeedback {
		errs.Add("kind", "kind must be contact or feedback")
	}
	switch {
	case name == "":
		errs.Add("name", "name is required")
	case utf8.RuneCountInString(name) > contactNameMaxLen:
		errs.Add("name", "name is too long")
	}
	if email == "" {
		errs.Add("email", "email is required")
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		errs.Add("email", "email is invalid")
	}
	if utf8.RuneCountInString(subject) > contactSubjectMaxLen {
		errs.Add("subject", "subject is too long")
	}
	switch {
	case message == "":
		errs.Add("message", "message is required")
	case utf8.RuneCountInString(message) > contactMessageMaxLen:
		errs.Add("message", "message is too long")
	}
	rating := 0
	if kind == constants.ContactKindFeedback {
		if input.Rating < 1 || input.Rating > 5 {
			errs.Add("rating", "rating must be between 1 and 5")
		}
		rating = input.Rating
	}
	if !errs.Empty() {
		return nil, newValidationError(ErrContactInvalid, errs)
	}

	record := &models.ContactMessage{
		Kind:    kind,
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: message,
		Rating:  rating,
		Status:  constants.ContactStatusNew,
	}
	if err := s.repo.Create(record); err != nil {
		return nil, err
	}
	logger.Infow("contact_submitted", "contact_id", record.ID, "kind", record.Kind)
	return record, nil
}

// List 后台留言列表
func (s *ContactService) List(query ContactListQuery) ([]models.ContactMessage, int64, error) {
	return s.repo.List(repository.ContactListFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		Kind:     strings.ToLower(strings.TrimSpace(query.Kind)),
		Status:   strings.ToLower(strings.TrimSpace(query.Status)),
		Search:   query.Search,
	})
}

// Get 获取留言详情；markRead 为 true 时新留言自动标记为已读
func (s *ContactService) Get(id uint, markRead bool) (*models.ContactMessage, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}
	if markRead && record.Status == constants.ContactStatusNew {
		now := s.clock.Now()
		record.Status = constants.ContactStatusRead
		record.HandledAt = &now
		if err := s.repo.Update(record); err != nil {
			return nil, err
		}
	}
	return record, nil
}

// Update 修改处理状态或备注
func (s *ContactService) Update(id uint, input ContactUpdateInput) (*models.ContactMessage, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}

	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status != "" && status != record.Status {
		if !canTransitContact(record.Status, status) {
			return nil, ErrContactStatusInvalid
		}
		now := s.clock.Now()
		logger.Infow("contact_status_changed", "contact_id", id, "from", record.Status, "to", status)
		record.Status = status
		record.HandledAt = &now
	}
	if input.AdminNote != nil {
		record.AdminNote = strings.TrimSpace(*input.AdminNote)
	}
	if err := s.repo.Update(record); err != nil {
		return nil, err
	}
	return record, nil
}

// Delete 删除留言
func (s *ContactService) Delete(id uint) error {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

func canTransitContact(from, to string) bool {
	for _, next := range contactTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
