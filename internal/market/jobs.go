package market

import (
	"context"
	"fmt"
	"strings"

	"skillora/internal/model"
)

// GetJobs returns every job, or only those whose title, description or any
// tag contains query (case-insensitive) when query is non-empty.
func (s *Service) GetJobs(ctx context.Context, query string) ([]model.Job, error) {
	if err := s.wait(ctx, delayGetJobs); err != nil {
		return nil, err
	}

	jobs, err := s.jobs.load(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return jobs, nil
	}

	q := strings.ToLower(query)
	matched := make([]model.Job, 0, len(jobs))
	for _, j := range jobs {
		if jobMatches(j, q) {
			matched = append(matched, j)
		}
	}
	s.logger.Debug("jobs searched", "query", query, "matches", len(matched))
	return matched, nil
}

// jobMatches reports whether the lowercased query q occurs in the job text.
func jobMatches(j model.Job, q string) bool {
	if strings.Contains(strings.ToLower(j.Title), q) || strings.Contains(strings.ToLower(j.Description), q) {
		return true
	}
	for _, t := range j.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// GetJobByID returns the job with the given id, or nil if there is none.
func (s *Service) GetJobByID(ctx context.Context, id string) (*model.Job, error) {
	if err := s.wait(ctx, delayGetJob); err != nil {
		return nil, err
	}

	jobs, err := s.jobs.load(ctx)
	if err != nil {
		return nil, err
	}
	return findJob(jobs, id), nil
}

func findJob(jobs []model.Job, id string) *model.Job {
	for i := range jobs {
		if jobs[i].ID == id {
			j := jobs[i]
			return &j
		}
	}
	return nil
}

// GetMyJobs returns the jobs posted by the session's user plus the seeded
// jobs of DefaultClientID. The anonymous actor has no jobs.
func (s *Service) GetMyJobs(ctx context.Context, sess *Session) ([]model.Job, error) {
	if err := s.wait(ctx, delayGetMyJobs); err != nil {
		return nil, err
	}
	if sess == nil {
		return []model.Job{}, nil
	}

	jobs, err := s.jobs.load(ctx)
	if err != nil {
		return nil, err
	}

	mine := make([]model.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.ClientID == sess.UserID() || j.ClientID == DefaultClientID {
			mine = append(mine, j)
		}
	}
	return mine, nil
}

// PostJob creates a job from draft on behalf of sess, puts it at the head of
// the job list and posts a success notification.
func (s *Service) PostJob(ctx context.Context, sess *Session, draft model.JobDraft) (*model.Job, error) {
	if err := s.wait(ctx, delayPostJob); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	jobs, err := s.jobs.load(ctx)
	if err != nil {
		return nil, err
	}

	title := draft.Title
	if title == "" {
		title = "Untitled Job"
	}

	job := model.Job{
		ID:             s.newID("job_"),
		ClientID:       sess.UserID(),
		Title:          title,
		Description:    draft.Description,
		Budget:         fmt.Sprintf("Rs %d", s.rand.IntN(50)*100+500),
		Type:           model.JobTypeFixedPrice,
		Level:          model.LevelIntermediate,
		PostedTime:     justNow,
		Tags:           []string{"New", "Hiring"},
		ClientRating:   5.0,
		ReviewCount:    0,
		Verified:       true,
		ProposalsCount: 0,
		IsNew:          true,
		Status:         model.JobStatusOpen,
	}

	if err := s.jobs.save(ctx, append([]model.Job{job}, jobs...)); err != nil {
		return nil, err
	}

	notice := s.successNotice(fmt.Sprintf("Your job \"%s\" has been posted successfully.", job.Title))
	if err := s.notify(ctx, notice); err != nil {
		return nil, err
	}

	s.logger.Info("job posted", "job_id", job.ID, "client_id", job.ClientID)
	return &job, nil
}
