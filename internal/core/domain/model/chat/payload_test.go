package chat_test

import (
	"testing"

	"studydesk/internal/core/domain/model/chat"
	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload_Encode(t *testing.T) {
	p := chat.Payload{Action: chat.ActionChoose, OrderID: 12, Value: "Другое: вариант"}

	encoded := p.Encode()
	assert.Equal(t, "choose:12:Другое: вариант", encoded)

	parsed, err := chat.ParsePayload(encoded)
	require.NoError(t, err)
	assert.Equal(t, p, parsed)
}

func TestParsePayload_Malformed(t *testing.T) {
	for _, data := range []string{"", "pay", "pay:x:", ":1:", "pay:-1:"} {
		t.Run(data, func(t *testing.T) {
			_, err := chat.ParsePayload(data)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		})
	}
}

func TestOrigin_Actor(t *testing.T) {
	origin := chat.Origin{ActorID: 7, ChatRef: 7, Username: "anna", FirstName: "Анна"}

	var ev chat.Event = chat.Text{Origin: origin, Body: "привет"}
	actor := ev.From().Actor(kernel.RoleCustomer)

	assert.Equal(t, kernel.ActorID(7), actor.ID)
	assert.Equal(t, kernel.RoleCustomer, actor.Role)
	assert.Equal(t, "@anna", actor.Mention())
}
