package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-optimizer/pkg/response"
)

// Optimize godoc
// @Summary     Optimize a resume
// @Description Extracts the uploaded PDF, runs the optimization agent on the session and returns the reply with its tool timeline.
// @Tags        Resume
// @Accept      multipart/form-data
// @Produce     json
// @Param       file            formData file   true  "Resume PDF"
// @Param       job_description formData string true  "Target job description"
// @Param       user_message    formData string true  "Instruction for the agent"
// @Param       session_id      formData string false "Existing session id (thread_id is accepted too)"
// @Param       linkedin_url    formData string false "LinkedIn profile URL"
// @Param       github_url      formData string false "GitHub profile URL"
// @Param       leetcode_url    formData string false "LeetCode profile URL"
// @Success     200 {object} optimizeResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     409 {object} response.Resp "Session busy"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /optimize_resume [POST]
func (h *handler) Optimize(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processOptimizeReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Optimize(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Optimize: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	c.JSON(http.StatusOK, h.newOptimizeResp(output))
}

// Download godoc
// @Summary     Download an optimized resume
// @Description Streams a generated PDF from the output directory.
// @Tags        Resume
// @Produce     application/pdf
// @Param       filename path string true "Generated file name"
// @Success     200 {file} file
// @Failure     400 {object} response.Resp "Invalid file name"
// @Failure     404 {object} response.Resp "File not found"
// @Router      /download_optimized/{filename} [GET]
func (h *handler) Download(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.Download(ctx, c.Param("filename"))
	if err != nil {
		h.l.Warnf(ctx, "uc.Download: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.FileAttachment(output.Path, output.FileName)
}
