package api

import (
	"errors"
	"factorlab/internal/expression"
	"fmt"

	"github.com/gin-gonic/gin"
)

type constructFactorEquationRequest struct {
	UserInput string  `json:"input" binding:"required,max=2000"`
	UserID    *string `json:"userID"`
}

type constructFactorEquationResponse struct {
	FactorExpression string `json:"factorExpression"`
	FactorName       string `json:"factorName"`
}

func (h ApiHandler) constructFactorEquation(c *gin.Context) {
	if h.GptRepository == nil {
		returnErrorJsonCode(fmt.Errorf("factor equation generation is not configured"), c, 503)
		return
	}

	var requestBody constructFactorEquationRequest
	if err := bindJSON(c, &requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}

	result, err := h.GptRepository.ConstructFactorEquation(
		c.Request.Context(),
		requestBody.UserInput,
	)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	// the model declined
	if result.Error != "" {
		c.AbortWithStatusJSON(400, gin.H{
			"error":  result.Error,
			"reason": result.Reason,
		})
		return
	}

	tree, err := expression.Parse(result.FactorExpression)
	if err != nil {
		var pe *expression.ParseError
		reason := err.Error()
		if errors.As(err, &pe) {
			reason = pe.Reason
		}
		c.AbortWithStatusJSON(400, gin.H{
			"error":  fmt.Sprintf("generated expression is invalid: %s", result.FactorExpression),
			"reason": reason,
		})
		return
	}

	c.JSON(200, constructFactorEquationResponse{
		FactorExpression: tree.String(),
		FactorName:       result.FactorName,
	})
}
