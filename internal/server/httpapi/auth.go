package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rivalrockets/rivalrockets/internal/server/services"
)

func (a *API) register(c *gin.Context) {
	var in services.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "malformed JSON body")
		return
	}

	user, err := a.users.Register(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Location", a.urls.User(user.ID))
	c.JSON(http.StatusCreated, user.Projection(a.urls, 0))
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// Expiration, in seconds, lets clients ask for a shorter session.
	Expiration int64 `json:"expiration"`
}

func (a *API) issueToken(c *gin.Context) {
	var in tokenRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "malformed JSON body")
		return
	}

	user, err := a.users.Authenticate(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	token, validity, err := a.users.IssueAuthToken(user, time.Duration(in.Expiration)*time.Second)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expiration": int64(validity.Seconds()),
	})
}

type tokenBody struct {
	Token string `json:"token"`
}

func (a *API) confirm(c *gin.Context) {
	var in tokenBody
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "malformed JSON body")
		return
	}
	if err := a.users.ConfirmUser(c.Request.Context(), in.Token); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account confirmed"})
}

type resetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (a *API) resetPassword(c *gin.Context) {
	var in resetRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "malformed JSON body")
		return
	}
	if err := a.users.ResetPassword(c.Request.Context(), in.Token, in.NewPassword); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func (a *API) changeEmail(c *gin.Context) {
	var in tokenBody
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "malformed JSON body")
		return
	}
	if err := a.users.ChangeEmail(c.Request.Context(), in.Token); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email updated"})
}
