package market

import (
	"context"
	"fmt"

	"skillora/internal/model"
)

const (
	unknownFreelancerName = "Unknown Freelancer"
	submittedAtLayout     = "2006-01-02T15:04:05.000Z"
)

// SubmitProposal applies the session's user to a job.
//
// It returns false without writing anything if that user already has a
// proposal for jobID. Otherwise it stores a proposal carrying a snapshot of the
// user, increments the job's proposal count, posts a notification and returns
// true. A nil or zero matchScore is replaced by a random score in [85, 100).
func (s *Service) SubmitProposal(ctx context.Context, sess *Session, jobID, coverLetter string, matchScore *int) (bool, error) {
	if err := s.wait(ctx, delaySubmitProposal); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	proposals, err := s.proposals.load(ctx)
	if err != nil {
		return false, err
	}

	freelancerID := sess.UserID()
	for _, p := range proposals {
		if p.JobID == jobID && p.FreelancerID == freelancerID {
			s.logger.Debug("duplicate proposal rejected", "job_id", jobID, "freelancer_id", freelancerID)
			return false, nil
		}
	}

	score := 0
	if matchScore != nil {
		score = *matchScore
	}
	if score == 0 {
		score = s.rand.IntN(15) + 85
	}

	proposal := model.Proposal{
		ID:               s.newID("prop_"),
		JobID:            jobID,
		FreelancerID:     freelancerID,
		FreelancerName:   unknownFreelancerName,
		FreelancerAvatar: avatarBaseURL,
		CoverLetter:      coverLetter,
		Status:           model.ProposalPending,
		SubmittedAt:      s.clock.Now().UTC().Format(submittedAtLayout),
		MatchScore:       score,
	}
	if u := sess.User(); u != nil {
		proposal.FreelancerName = u.Name
		proposal.FreelancerAvatar = u.Avatar
	}

	if err := s.proposals.save(ctx, append(proposals, proposal)); err != nil {
		return false, err
	}

	jobs, err := s.jobs.load(ctx)
	if err != nil {
		return false, err
	}
	title := jobID
	for i := range jobs {
		if jobs[i].ID == jobID {
			jobs[i].ProposalsCount++
			title = jobs[i].Title
		}
	}
	if err := s.jobs.save(ctx, jobs); err != nil {
		return false, err
	}

	if err := s.notify(ctx, s.successNotice(fmt.Sprintf("Application sent for \"%s\"", title))); err != nil {
		return false, err
	}

	s.logger.Info("proposal submitted", "proposal_id", proposal.ID, "job_id", jobID, "freelancer_id", freelancerID)
	return true, nil
}

// GetProposalsForJob returns every proposal referencing jobID.
func (s *Service) GetProposalsForJob(ctx context.Context, jobID string) ([]model.Proposal, error) {
	if err := s.wait(ctx, delayGetProposals); err != nil {
		return nil, err
	}

	proposals, err := s.proposals.load(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]model.Proposal, 0)
	for _, p := range proposals {
		if p.JobID == jobID {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// GetMyProposals returns the session user's proposals joined with their job
// and the job's contract, if any. Proposals whose job no longer exists are
// left out. The anonymous actor has no proposals.
func (s *Service) GetMyProposals(ctx context.Context, sess *Session) ([]model.ProposalView, error) {
	if err := s.wait(ctx, delayGetMyProposals); err != nil {
		return nil, err
	}
	if sess == nil {
		return []model.ProposalView{}, nil
	}

	proposals, err := s.proposals.load(ctx)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobs.load(ctx)
	if err != nil {
		return nil, err
	}
	contracts, err := s.contracts.load(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]model.ProposalView, 0)
	for _, p := range proposals {
		if p.FreelancerID != sess.UserID() {
			continue
		}
		job := findJob(jobs, p.JobID)
		if job == nil {
			continue
		}
		views = append(views, model.ProposalView{
			Proposal: p,
			Job:      *job,
			Contract: contractForJob(contracts, p.JobID),
		})
	}
	return views, nil
}
