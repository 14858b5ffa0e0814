package service

import (
	"time"

	"fluxo/internal/api/dto"
	"fluxo/internal/model"

	"github.com/jinzhu/copier"
)

const timeLayout = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}

// toProfileCard 档案缺失时返回 nil，视图装配容忍空作者
func toProfileCard(profile *model.Profile) *dto.ProfileCardDTO {
	if profile == nil {
		return nil
	}
	card := &dto.ProfileCardDTO{}
	_ = copier.Copy(card, profile)
	return card
}

// buildProfileMap 批量资料按 user_id 建索引
func buildProfileMap(profiles []*model.Profile) map[uint64]*model.Profile {
	m := make(map[uint64]*model.Profile, len(profiles))
	for _, p := range profiles {
		m[p.UserID] = p
	}
	return m
}
