package utils

import "github.com/gin-gonic/gin"

// DataResponse wraps every successful payload, matching what the
// front-end expects: { "data": ... }.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// ErrorResponse mirrors the error contract: { "status": 400, "message": "..." }.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func RespondData(c *gin.Context, code int, data interface{}) {
	c.JSON(code, DataResponse{Data: data})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, ErrorResponse{
		Status:  code,
		Message: err.Error(),
	})
}
