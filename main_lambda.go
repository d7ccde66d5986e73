//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

var lambdaLog = func() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	return log
}()

func handler(_ context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(http.StatusBadRequest, "invalid base64 body")
		}
		body = string(decoded)
	}
	if !gjson.Valid(body) {
		return errResp(http.StatusBadRequest, "invalid JSON")
	}

	// Tuning comes from SHRAPNEL_* function environment variables.
	cfg, err := LoadConfig("")
	if err != nil {
		return requestErr(err)
	}

	var out any
	switch mode := gjson.Get(body, "mode").String(); mode {
	case "", "search":
		req, err := ParseRequest(body)
		if err != nil {
			return requestErr(err)
		}
		report, err := Search(req.Assembly, req.Target, cfg, lambdaLog)
		if err != nil {
			return requestErr(err)
		}
		out = report
	case "eval":
		req, err := ParseRequest(body)
		if err != nil {
			return requestErr(err)
		}
		e, err := Evaluate(req.Assembly, req.Target, cfg)
		if err != nil {
			return requestErr(err)
		}
		out = e
	case "spring":
		in, err := ParseSpringRequest(body)
		if err != nil {
			return requestErr(err)
		}
		designs, err := SpringSearch(in)
		if err != nil {
			return requestErr(err)
		}
		out = designs
	default:
		return errResp(http.StatusBadRequest, "unknown mode "+mode)
	}

	respJSON, err := json.Marshal(out)
	if err != nil {
		return errResp(http.StatusInternalServerError, err.Error())
	}
	return events.LambdaFunctionURLResponse{StatusCode: http.StatusOK, Headers: jsonHeader, Body: string(respJSON)}, nil
}

// requestErr maps input validation failures to 400 and anything else to 500.
func requestErr(err error) (events.LambdaFunctionURLResponse, error) {
	for _, target := range []error{
		ErrInvalidRequest, ErrQuadrantCount, ErrNegativeDimension, ErrInvalidTarget,
		ErrInvalidCount, ErrScrewDiameter, ErrInvalidSpringInput,
	} {
		if errors.Is(err, target) {
			return errResp(http.StatusBadRequest, err.Error())
		}
	}
	lambdaLog.WithError(err).Error("[lambda] request failed")
	return errResp(http.StatusInternalServerError, err.Error())
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	lambda.Start(handler)
}
