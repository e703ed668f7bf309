package service

import (
	"BiuBiuStar/internal/api/config"
	"BiuBiuStar/internal/api/dto"
	"BiuBiuStar/internal/model"
	"BiuBiuStar/internal/pkg/consts"
	"BiuBiuStar/internal/pkg/redis"
	"BiuBiuStar/internal/repository"
	"context"
	"log/slog"
	"strings"
	"time"
)

// spamKeywords 命中即标记为 spam，仍入库留给运营复核
var spamKeywords = []string{
	"casino", "viagra", "lottery", "bitcoin giveaway", "click here",
	"免费领取", "加微信", "博彩",
}

type ContactService interface {
	SubmitContact(ctx context.Context, clientIP string, createDTO *dto.ContactCreateDTO) error
	GetContactStats(ctx context.Context) (*dto.ContactStatsDTO, error)
}

type contactServiceImpl struct {
	contactRepo repository.ContactRepo
	cfg         config.ContactConfig
}

func NewContactService(contactRepo repository.ContactRepo, cfg config.ContactConfig) ContactService {
	if cfg.WindowMinutes <= 0 {
		cfg.WindowMinutes = 15
	}
	if cfg.MaxPerWindow <= 0 {
		cfg.MaxPerWindow = 3
	}
	if cfg.DedupHours <= 0 {
		cfg.DedupHours = 24
	}
	return &contactServiceImpl{contactRepo: contactRepo, cfg: cfg}
}

// SubmitContact 先按 IP 滑动窗口限流，再按邮箱窗口期去重，最后过垃圾词
func (s *contactServiceImpl) SubmitContact(ctx context.Context, clientIP string, createDTO *dto.ContactCreateDTO) error {
	window := time.Duration(s.cfg.WindowMinutes) * time.Minute
	count, err := redis.SlidingWindowIncr(ctx, consts.ContactRateKey+clientIP, window)
	if err != nil {
		slog.WarnContext(ctx, "联系表单限流计数失败", "ip", clientIP, "error", err)
	} else if count > int64(s.cfg.MaxPerWindow) {
		return ErrRateLimited
	}

	since := time.Now().Add(-time.Duration(s.cfg.DedupHours) * time.Hour)
	exists, err := s.contactRepo.ExistsRecentByEmail(ctx, createDTO.Email, since)
	if err != nil {
		return err
	}
	if exists {
		return ErrContactDuplicate
	}

	form := &model.ContactForm{
		Name:            createDTO.Name,
		Email:           createDTO.Email,
		Company:         createDTO.Company,
		Phone:           createDTO.Phone,
		CooperationType: createDTO.CooperationType,
		Description:     createDTO.Description,
		Status:          model.ContactStatusPending,
	}
	if isSpam(createDTO.Description) || isSpam(createDTO.Name) {
		form.Status = model.ContactStatusSpam
	}

	return s.contactRepo.CreateContact(ctx, form)
}

func (s *contactServiceImpl) GetContactStats(ctx context.Context) (*dto.ContactStatsDTO, error) {
	counts, err := s.contactRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	stats := &dto.ContactStatsDTO{StatusCounts: counts}
	for _, count := range counts {
		stats.Total += count
	}
	return stats, nil
}

func isSpam(text string) bool {
	lowered := strings.ToLower(text)
	for _, keyword := range spamKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
