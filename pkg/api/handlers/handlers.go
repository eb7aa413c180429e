package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cbodonnell/trivia/pkg/log"
	"github.com/cbodonnell/trivia/pkg/rpc"
	"github.com/cbodonnell/trivia/pkg/version"
	"github.com/gorilla/mux"
)

// MaxBodyBytes bounds every request body
const MaxBodyBytes = 1 << 20

// RPCRequest is the body of POST /rpc
type RPCRequest struct {
	Method  rpc.Method      `json:"method"`
	Payload json.RawMessage `json:"payload"`
}

func HandleSetServerStatus(service *rpc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := rpc.SetServerStatusRequest{}
		if !decodeBody(w, r, &req) {
			return
		}
		res := service.SetServerStatus(r.Context(), req)
		writeResult(w, res, res)
	}
}

func HandleRegisterPlayer(service *rpc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := rpc.RegisterPlayerRequest{}
		if !decodeBody(w, r, &req) {
			return
		}
		res := service.RegisterPlayer(r.Context(), req)
		if res.Success {
			writeJSON(w, http.StatusCreated, res)
			return
		}
		writeResult(w, res.Result, res)
	}
}

func HandleGetQuestions(service *rpc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := service.GetQuestions(r.Context(), rpc.QuestionsRequest{
			Position: r.URL.Query().Get("position"),
		})
		writeResult(w, res.Result, res)
	}
}

func HandleGetStatus(service *rpc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := service.GetStatus(r.Context())
		writeResult(w, res.Result, res)
	}
}

func HandleStartGame(service *rpc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := service.StartGame(r.Context())
		writeResult(w, res, res)
	}
}

func HandleNextRound(service *rpc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := service.NextRound(r.Context())
		writeResult(w, res, res)
	}
}

func HandleRecordFinalResults(service *rpc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := rpc.RecordFinalResultsRequest{}
		if !decodeBody(w, r, &req) {
			return
		}
		name, err := url.PathUnescape(mux.Vars(r)["name"])
		if err != nil {
			writeBadRequest(w, "Invalid player name.")
			return
		}
		req.PlayerName = name
		res := service.RecordFinalResults(r.Context(), req)
		writeResult(w, res, res)
	}
}

func HandleResetGame(service *rpc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := service.ResetGame(r.Context())
		writeResult(w, res, res)
	}
}

func HandleResetAll(service *rpc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := service.ResetAll(r.Context())
		writeResult(w, res, res)
	}
}

func HandleGetLeaderboard(service *rpc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := service.GetLeaderboard(r.Context())
		writeResult(w, res.Result, res)
	}
}

func HandleListEvents(service *rpc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := rpc.ListEventsRequest{}
		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil {
				writeBadRequest(w, "Invalid limit.")
				return
			}
			req.Limit = limit
		}
		res := service.ListEvents(r.Context(), req)
		writeResult(w, res.Result, res)
	}
}

// HandleRPC runs any method by name, for callers that prefer a single endpoint.
func HandleRPC(service *rpc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := RPCRequest{}
		if !decodeBody(w, r, &req) {
			return
		}
		res, err := service.Dispatch(r.Context(), req.Method, req.Payload)
		if err != nil {
			if errors.Is(err, rpc.ErrUnknownMethod) {
				writeJSON(w, http.StatusNotFound, rpc.Result{Success: false, Message: err.Error(), Code: rpc.CodeNotFound})
				return
			}
			writeBadRequest(w, err.Error())
			return
		}
		status := http.StatusOK
		if o, ok := res.(outcome); ok {
			status = StatusForResult(o.Outcome())
		}
		writeJSON(w, status, res)
	}
}

type outcome interface {
	Outcome() rpc.Result
}

func HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version.Get(),
		})
	}
}

// decodeBody decodes an optional JSON body into v. It writes a 400 and returns false on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		log.Debug("failed to decode request body: %v", err)
		writeBadRequest(w, "Invalid request body.")
		return false
	}
	return true
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, rpc.Result{Success: false, Message: message, Code: rpc.CodeInvalidArgument})
}

// writeResult writes body with the status that matches result.
func writeResult(w http.ResponseWriter, result rpc.Result, body interface{}) {
	writeJSON(w, StatusForResult(result), body)
}

// StatusForResult maps a result record to an HTTP status.
func StatusForResult(result rpc.Result) int {
	if result.Success {
		return http.StatusOK
	}
	switch result.Code {
	case rpc.CodeInvalidArgument:
		return http.StatusBadRequest
	case rpc.CodeNotFound:
		return http.StatusNotFound
	case rpc.CodeAlreadyExists, rpc.CodeFailedPrecondition:
		return http.StatusConflict
	case rpc.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("failed to encode response: %v", err)
	}
}
