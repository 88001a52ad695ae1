package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillora/internal/model"
)

type loginRequest struct {
	Role model.Role `json:"role" binding:"required"`
	Name string     `json:"name" binding:"required"`
}

type proposalRequest struct {
	CoverLetter string `json:"coverLetter" binding:"required"`
	MatchScore  *int   `json:"matchScore" binding:"omitempty,min=0,max=100"`
}

type hireRequest struct {
	FreelancerName string `json:"freelancerName" binding:"required"`
	Amount         string `json:"amount" binding:"required"`
}

type messageRequest struct {
	Text string `json:"text" binding:"required"`
}

func (s *Server) registerSessionRoutes(r *gin.RouterGroup) {
	r.POST("/session", s.login)
	r.GET("/session", s.currentUser)
	r.PATCH("/session/profile", s.updateProfile)
	r.DELETE("/session", s.logout)
	r.POST("/reset", s.reset)
}

func (s *Server) registerJobRoutes(r *gin.RouterGroup) {
	r.GET("/jobs", s.listJobs)
	r.POST("/jobs", s.postJob)
	r.GET("/jobs/:id", s.getJob)
	r.GET("/jobs/:id/proposals", s.listProposals)
	r.POST("/jobs/:id/proposals", s.submitProposal)
	r.POST("/jobs/:id/hire", s.hire)
	r.GET("/my/jobs", s.myJobs)
	r.GET("/my/proposals", s.myProposals)
}

func (s *Server) registerContractRoutes(r *gin.RouterGroup) {
	r.GET("/contracts/:id", s.getContract)
	r.POST("/contracts/:id/complete", s.completeContract)
}

func (s *Server) registerMessageRoutes(r *gin.RouterGroup) {
	r.GET("/contacts", s.listContacts)
	r.GET("/contacts/:id/messages", s.listMessages)
	r.POST("/contacts/:id/messages", s.sendMessage)
}

func (s *Server) registerNotificationRoutes(r *gin.RouterGroup) {
	r.GET("/notifications", s.listNotifications)
	r.POST("/notifications/read", s.markNotificationsRead)
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if !bind(c, &req) {
		return
	}
	user, err := s.svc.Login(c.Request.Context(), req.Role, req.Name)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) currentUser(c *gin.Context) {
	user := session(c).User()
	if user == nil {
		errorJSON(c, http.StatusNotFound, "not logged in")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) updateProfile(c *gin.Context) {
	var update model.ProfileUpdate
	if !bindOptional(c, &update) {
		return
	}
	user, err := s.svc.UpdateUser(c.Request.Context(), session(c), update)
	if err != nil {
		s.fail(c, err)
		return
	}
	if user == nil {
		errorJSON(c, http.StatusNotFound, "not logged in")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) logout(c *gin.Context) {
	if err := s.svc.Logout(c.Request.Context()); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) reset(c *gin.Context) {
	if err := s.svc.ResetDatabase(c.Request.Context()); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listJobs(c *gin.Context) {
	jobs, err := s.svc.GetJobs(c.Request.Context(), c.Query("q"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (s *Server) postJob(c *gin.Context) {
	var draft model.JobDraft
	if !bindOptional(c, &draft) {
		return
	}
	job, err := s.svc.PostJob(c.Request.Context(), session(c), draft)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (s *Server) getJob(c *gin.Context) {
	job, err := s.svc.GetJobByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	if job == nil {
		errorJSON(c, http.StatusNotFound, "job not found")
		return
	}
	c.JSON(http.StatusOK, job)
}

func (s *Server) listProposals(c *gin.Context) {
	proposals, err := s.svc.GetProposalsForJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, proposals)
}

func (s *Server) submitProposal(c *gin.Context) {
	var req proposalRequest
	if !bind(c, &req) {
		return
	}
	ok, err := s.svc.SubmitProposal(c.Request.Context(), session(c), c.Param("id"), req.CoverLetter, req.MatchScore)
	if err != nil {
		s.fail(c, err)
		return
	}
	if !ok {
		errorJSON(c, http.StatusConflict, "already applied to this job")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"submitted": true})
}

func (s *Server) hire(c *gin.Context) {
	var req hireRequest
	if !bind(c, &req) {
		return
	}
	id, err := s.svc.HireFreelancer(c.Request.Context(), session(c), c.Param("id"), req.FreelancerName, req.Amount)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"contractId": id})
}

func (s *Server) myJobs(c *gin.Context) {
	jobs, err := s.svc.GetMyJobs(c.Request.Context(), session(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (s *Server) myProposals(c *gin.Context) {
	views, err := s.svc.GetMyProposals(c.Request.Context(), session(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) getContract(c *gin.Context) {
	contract, err := s.svc.GetContract(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	if contract == nil {
		errorJSON(c, http.StatusNotFound, "contract not found")
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (s *Server) completeContract(c *gin.Context) {
	contract, err := s.svc.CompleteContract(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	if contract == nil {
		errorJSON(c, http.StatusNotFound, "contract not found")
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (s *Server) listContacts(c *gin.Context) {
	contacts, err := s.svc.GetContacts(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func (s *Server) listMessages(c *gin.Context) {
	msgs, err := s.svc.GetMessages(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

func (s *Server) sendMessage(c *gin.Context) {
	var req messageRequest
	if !bind(c, &req) {
		return
	}
	msg, err := s.svc.SendMessage(c.Request.Context(), session(c), c.Param("id"), req.Text)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (s *Server) listNotifications(c *gin.Context) {
	notifs, err := s.svc.GetNotifications(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, notifs)
}

func (s *Server) markNotificationsRead(c *gin.Context) {
	n, err := s.svc.MarkNotificationsRead(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked": n})
}
