package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/rehmanpranto/TutorTrack/pkg/errors"
)

// JSON sends a success payload. Bodies are written as-is: the API contract
// fixes the exact shape of each endpoint's response.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, payload)
}

// Message sends a `{message: ...}` confirmation body.
func Message(c *gin.Context, status int, message string) {
	JSON(c, status, gin.H{"message": message})
}

// Error converts any error into the common `{error, code}` body.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, gin.H{"error": appErr.Message, "code": appErr.Code})
}

// Attachment streams binary content with a download filename.
func Attachment(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, body)
}
