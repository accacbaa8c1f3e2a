package handlers

import (
	"net/http"

	"github.com/go-chi/render"
)

// Response единый конверт ответа API. Status дублирует HTTP-код.
type Response struct {
	Status  int    `json:"status"`
	ID      int64  `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func Submitted(id int64) Response {
	return Response{Status: http.StatusOK, ID: id, Message: "submitted"}
}

func Updated() Response {
	return Response{Status: http.StatusOK, Message: "updated"}
}

func OKWithData(data any) Response {
	return Response{Status: http.StatusOK, Data: data}
}

func Error(code int, msg string) Response {
	return Response{Status: code, Message: msg}
}

func writeJSON(w http.ResponseWriter, r *http.Request, resp Response) {
	render.Status(r, resp.Status)
	render.JSON(w, r, resp)
}
