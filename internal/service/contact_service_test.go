package service

import (
	"BiuBiuStar/internal/api/config"
	"BiuBiuStar/internal/api/dto"
	"BiuBiuStar/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newContactService(t *testing.T) (ContactService, *gorm.DB) {
	db := setupTestDB(t)
	repos := newTestRepos(db)
	return NewContactService(repos.contact, config.ContactConfig{}), db
}

func submitDTO(email string) *dto.ContactCreateDTO {
	return &dto.ContactCreateDTO{
		Name:            "张三",
		Email:           email,
		CooperationType: "business",
		Description:     "希望洽谈合作事宜",
	}
}

func TestSubmitContact(t *testing.T) {
	svc, db := newContactService(t)
	ctx := context.Background()

	require.NoError(t, svc.SubmitContact(ctx, "10.0.0.1", submitDTO("biz@example.com")))

	var form model.ContactForm
	require.NoError(t, db.WithContext(ctx).First(&form).Error)
	assert.Equal(t, model.ContactStatusPending, form.Status)
	assert.Equal(t, "biz@example.com", form.Email)
}

func TestSubmitContactDedup(t *testing.T) {
	svc, _ := newContactService(t)
	ctx := context.Background()

	require.NoError(t, svc.SubmitContact(ctx, "10.0.0.2", submitDTO("dup@example.com")))

	// 24 小时内同邮箱重复提交被拒
	err := svc.SubmitContact(ctx, "10.0.0.3", submitDTO("dup@example.com"))
	assert.ErrorIs(t, err, ErrContactDuplicate)

	// 换邮箱不受影响
	assert.NoError(t, svc.SubmitContact(ctx, "10.0.0.2", submitDTO("other@example.com")))
}

func TestSubmitContactSpamStillStored(t *testing.T) {
	svc, db := newContactService(t)
	ctx := context.Background()

	spam := submitDTO("spam@example.com")
	spam.Description = "click here to win the lottery"
	require.NoError(t, svc.SubmitContact(ctx, "10.0.0.4", spam))

	var form model.ContactForm
	require.NoError(t, db.WithContext(ctx).
		Where("email = ?", "spam@example.com").First(&form).Error)
	assert.Equal(t, model.ContactStatusSpam, form.Status)
}

func TestContactStats(t *testing.T) {
	svc, _ := newContactService(t)
	ctx := context.Background()

	require.NoError(t, svc.SubmitContact(ctx, "10.0.0.5", submitDTO("a@example.com")))
	spam := submitDTO("b@example.com")
	spam.Description = "加微信 免费领取"
	require.NoError(t, svc.SubmitContact(ctx, "10.0.0.6", spam))

	stats, err := svc.GetContactStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Total)
	assert.EqualValues(t, 1, stats.StatusCounts[model.ContactStatusPending])
	assert.EqualValues(t, 1, stats.StatusCounts[model.ContactStatusSpam])
}
