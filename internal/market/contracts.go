package market

import (
	"context"
	"fmt"

	"skillora/internal/model"
)

const (
	placeholderFreelancerID = "mock_freelancer_id"
	startDateLayout         = "1/2/2006"
)

// HireFreelancer closes the job, records a contract with the named freelancer
// and marks their proposal accepted. It returns the new contract's id.
//
// Proposals are matched by job id and freelancer display name, so two
// freelancers sharing a name on the same job are both accepted. The
// contract's freelancer id is taken from the first matching proposal.
func (s *Service) HireFreelancer(ctx context.Context, sess *Session, jobID, freelancerName, amount string) (string, error) {
	if err := s.wait(ctx, delayHire); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	jobs, err := s.jobs.load(ctx)
	if err != nil {
		return "", err
	}
	jobTitle := "Project"
	for i := range jobs {
		if jobs[i].ID == jobID {
			jobs[i].Status = model.JobStatusClosed
			jobTitle = jobs[i].Title
		}
	}
	if err := s.jobs.save(ctx, jobs); err != nil {
		return "", err
	}

	proposals, err := s.proposals.load(ctx)
	if err != nil {
		return "", err
	}
	freelancerID := ""
	for i := range proposals {
		if proposals[i].JobID == jobID && proposals[i].FreelancerName == freelancerName {
			proposals[i].Status = model.ProposalAccepted
			if freelancerID == "" {
				freelancerID = proposals[i].FreelancerID
			}
		}
	}
	if freelancerID == "" {
		freelancerID = placeholderFreelancerID
	}

	contracts, err := s.contracts.load(ctx)
	if err != nil {
		return "", err
	}
	contract := model.Contract{
		ID:             s.newID("contract_"),
		JobID:          jobID,
		JobTitle:       jobTitle,
		ClientID:       sess.UserID(),
		FreelancerID:   freelancerID,
		FreelancerName: freelancerName,
		Amount:         amount,
		Status:         model.ContractActive,
		StartDate:      s.clock.Now().Format(startDateLayout),
	}
	if err := s.contracts.save(ctx, append([]model.Contract{contract}, contracts...)); err != nil {
		return "", err
	}
	if err := s.proposals.save(ctx, proposals); err != nil {
		return "", err
	}

	if err := s.notify(ctx, s.successNotice(fmt.Sprintf("Contract started with %s", freelancerName))); err != nil {
		return "", err
	}

	s.logger.Info("freelancer hired", "contract_id", contract.ID, "job_id", jobID, "freelancer", freelancerName)
	return contract.ID, nil
}

// GetContract returns the contract with the given id, or nil if there is none.
func (s *Service) GetContract(ctx context.Context, id string) (*model.Contract, error) {
	if err := s.wait(ctx, delayGetContract); err != nil {
		return nil, err
	}

	contracts, err := s.contracts.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range contracts {
		if contracts[i].ID == id {
			c := contracts[i]
			return &c, nil
		}
	}
	return nil, nil
}

// CompleteContract marks a contract completed and returns it, or nil if
// there is no contract with that id.
func (s *Service) CompleteContract(ctx context.Context, id string) (*model.Contract, error) {
	if err := s.wait(ctx, delayCompleteContract); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	contracts, err := s.contracts.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range contracts {
		if contracts[i].ID != id {
			continue
		}
		contracts[i].Status = model.ContractCompleted
		if err := s.contracts.save(ctx, contracts); err != nil {
			return nil, err
		}
		s.logger.Info("contract completed", "contract_id", id)
		c := contracts[i]
		return &c, nil
	}
	return nil, nil
}

// contractForJob returns the first contract for jobID, or nil.
func contractForJob(contracts []model.Contract, jobID string) *model.Contract {
	for i := range contracts {
		if contracts[i].JobID == jobID {
			c := contracts[i]
			return &c
		}
	}
	return nil
}
