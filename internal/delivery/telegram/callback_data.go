package telegram

import (
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Callback action constants.
const (
	actionAnswer   = "answer"
	actionAudio    = "audio"
	actionNext     = "next"
	actionLanguage = "lang"
)

var errMalformedCallback = errors.New("malformed callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// optionRef points at one option of one question of one session.
type optionRef struct {
	SessionID uuid.UUID
	Round     int
	Index     int
}

func buildOptionCallback(action string, sessionID uuid.UUID, round, index int) string {
	return callbackData{
		Action: action,
		Params: []string{
			sessionID.String(),
			strconv.Itoa(round),
			strconv.Itoa(index),
		},
	}.encode()
}

// buildAnswerCallback builds callback data for selecting an option.
func buildAnswerCallback(sessionID uuid.UUID, round, index int) string {
	return buildOptionCallback(actionAnswer, sessionID, round, index)
}

// buildAudioCallback builds callback data for hearing an option.
func buildAudioCallback(sessionID uuid.UUID, round, index int) string {
	return buildOptionCallback(actionAudio, sessionID, round, index)
}

// buildNextCallback builds callback data for moving to the next question.
func buildNextCallback(sessionID uuid.UUID) string {
	return callbackData{
		Action: actionNext,
		Params: []string{sessionID.String()},
	}.encode()
}

// buildLanguageCallback builds callback data for switching the word list.
func buildLanguageCallback(code string) string {
	return callbackData{
		Action: actionLanguage,
		Params: []string{code},
	}.encode()
}

func parseOptionRef(params []string) (optionRef, error) {
	if len(params) != 3 {
		return optionRef{}, errMalformedCallback
	}

	sessionID, err := uuid.Parse(params[0])
	if err != nil {
		return optionRef{}, errMalformedCallback
	}

	round, err1 := strconv.Atoi(params[1])
	index, err2 := strconv.Atoi(params[2])
	if err1 != nil || err2 != nil || round < 1 || index < 0 {
		return optionRef{}, errMalformedCallback
	}

	return optionRef{SessionID: sessionID, Round: round, Index: index}, nil
}

func parseSessionID(params []string) (uuid.UUID, error) {
	if len(params) != 1 {
		return uuid.Nil, errMalformedCallback
	}

	id, err := uuid.Parse(params[0])
	if err != nil {
		return uuid.Nil, errMalformedCallback
	}

	return id, nil
}
