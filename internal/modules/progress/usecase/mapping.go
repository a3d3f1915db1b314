package usecase

import (
	"studyquest/internal/modules/progress/domain"
	"studyquest/internal/modules/progress/dto"
)

func toBookOutput(b domain.Book) dto.BookOutput {
	return dto.BookOutput{
		ID:                b.ID,
		Title:             b.Title,
		Subject:           string(b.Subject),
		Icon:              b.Icon,
		Progress:          b.Progress,
		SessionsCompleted: b.SessionsCompleted,
	}
}

func toBookOutputs(books []domain.Book) []dto.BookOutput {
	out := make([]dto.BookOutput, len(books))
	for i, b := range books {
		out[i] = toBookOutput(b)
	}
	return out
}

func toLevelOutput(info domain.LevelInfo, totalXP int) dto.LevelOutput {
	return dto.LevelOutput{
		Level:       string(info.Level),
		Ordinal:     domain.Ordinal(info.Level),
		MinXP:       info.MinXP,
		Name:        info.Name,
		Emoji:       info.Emoji,
		Description: info.Description,
		Reached:     totalXP >= info.MinXP,
		XPRemaining: max(info.MinXP-totalXP, 0),
	}
}

func toLevelUpOutput(l *domain.LevelUp, totalXP int) *dto.LevelUpOutput {
	if l == nil {
		return nil
	}
	return &dto.LevelUpOutput{
		From: toLevelOutput(domain.InfoFor(l.From), totalXP),
		To:   toLevelOutput(domain.InfoFor(l.To), totalXP),
	}
}

func ratingPtr(r *domain.Rating) *int {
	if r == nil {
		return nil
	}
	v := int(*r)
	return &v
}

func toSessionOutput(rec domain.SessionRecord) dto.SessionOutput {
	return dto.SessionOutput{
		ID:              rec.ID,
		BookID:          rec.BookID,
		Date:            rec.Date.String(),
		FocusRating:     ratingPtr(rec.FocusRating),
		DurationMinutes: rec.DurationMinutes,
	}
}

func toStatsOutput(s domain.PlayerStats) dto.StatsOutput {
	out := dto.StatsOutput{
		TotalXP:        s.TotalXP,
		CurrentLevelXP: s.CurrentLevelXP,
		XPToNextLevel:  s.XPToNextLevel,
		Level:          s.Level,
		Avatar:         toLevelOutput(domain.InfoFor(s.AvatarLevel), s.TotalXP),
		TotalSessions:  s.TotalSessions,
		TotalMinutes:   s.TotalMinutes,
		Streak:         s.Streak,
		Books:          toBookOutputs(s.Books),
		History:        make([]dto.SessionOutput, len(s.SessionHistory)),
	}
	if s.LastSessionDate != nil {
		out.LastSessionDate = s.LastSessionDate.String()
	}
	for i, rec := range s.SessionHistory {
		out.History[i] = toSessionOutput(rec)
	}
	return out
}

func toReflection(in dto.ReflectionInput) domain.Reflection {
	return domain.Reflection{Understood: in.Understood, Important: in.Important, Remember: in.Remember}
}

func toSynthesisOutput(s domain.Synthesis) dto.SynthesisOutput {
	return dto.SynthesisOutput{Summary: s.Summary, KeyTakeaway: s.KeyTakeaway}
}

func toNoteOutput(n domain.BookNote) dto.NoteOutput {
	out := dto.NoteOutput{
		ID:        n.ID,
		BookID:    n.BookID,
		SessionID: n.SessionID,
		Date:      n.Date.String(),
		Reflection: dto.ReflectionInput{
			Understood: n.Reflection.Understood,
			Important:  n.Reflection.Important,
			Remember:   n.Reflection.Remember,
		},
		FocusRating: ratingPtr(n.FocusRating),
	}
	if n.Synthesis != nil {
		s := toSynthesisOutput(*n.Synthesis)
		out.Synthesis = &s
	}
	return out
}

func toGoalOutput(g domain.WeeklyGoal) dto.GoalOutput {
	return dto.GoalOutput{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Type:        string(g.Type),
		Target:      g.Target,
		Current:     g.Current,
		Completed:   g.Completed,
		Ready:       g.Ready(),
	}
}

func toGoalOutputs(goals []domain.WeeklyGoal) []dto.GoalOutput {
	out := make([]dto.GoalOutput, len(goals))
	for i, g := range goals {
		out[i] = toGoalOutput(g)
	}
	return out
}

func toSettingsOutput(s domain.AppSettings) dto.SettingsOutput {
	return dto.SettingsOutput{
		NotesEnabled:       s.NotesEnabled,
		FocusRatingEnabled: s.FocusRatingEnabled,
		ReduceAnimations:   s.ReduceAnimations,
		Theme:              string(s.Theme),
	}
}

func toAchievementOutput(a domain.Achievement) dto.AchievementOutput {
	out := dto.AchievementOutput{
		ID:               a.ID,
		Title:            a.Title,
		Description:      a.Description,
		Icon:             a.Icon,
		RequirementType:  string(a.Requirement.Type),
		RequirementValue: a.Requirement.Value,
		Unlocked:         a.Unlocked,
	}
	if a.UnlockedAt != nil {
		out.UnlockedAt = a.UnlockedAt.String()
	}
	return out
}
