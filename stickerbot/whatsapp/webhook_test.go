package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
  "object": "whatsapp_business_account",
  "entry": [
    {
      "id": "102290129340398",
      "changes": [
        {
          "field": "messages",
          "value": {
            "messaging_product": "whatsapp",
            "metadata": {"display_phone_number": "15550783881", "phone_number_id": "106540352242922"},
            "contacts": [{"profile": {"name": "Sofi"}, "wa_id": "5491122334455"}],
            "messages": [
              {"from": "5491122334455", "id": "wamid.A", "timestamp": "1749416383", "type": "text", "text": {"body": "@silenole abrir sobre"}},
              {"from": "5491122334455", "id": "wamid.B", "timestamp": "1749416384", "type": "image"}
            ]
          }
        },
        {
          "field": "messages",
          "value": {
            "messaging_product": "whatsapp",
            "statuses": [{"id": "wamid.out", "status": "delivered", "recipient_id": "5491122334455"}]
          }
        }
      ]
    },
    {
      "id": "102290129340399",
      "changes": [
        {
          "field": "messages",
          "value": {
            "messages": [
              {"from": "5491100000000", "id": "wamid.C", "timestamp": "1749416385", "type": "text", "text": {"body": "@silenole ayuda"}}
            ]
          }
        }
      ]
    }
  ]
}`

func TestParseWebhook(t *testing.T) {
	p, err := ParseWebhook([]byte(samplePayload))
	require.NoError(t, err)
	assert.True(t, p.IsWhatsApp())

	msgs := p.TextMessages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "wamid.A", msgs[0].ID)
	assert.Equal(t, "@silenole abrir sobre", msgs[0].Text.Body)
	assert.Equal(t, "wamid.C", msgs[1].ID)
	assert.Equal(t, "5491100000000", msgs[1].From)
}

func TestParseWebhook_Malformed(t *testing.T) {
	_, err := ParseWebhook([]byte(`{"object":`))
	assert.Error(t, err)
}

func TestWebhookPayload_OtherObject(t *testing.T) {
	p, err := ParseWebhook([]byte(`{"object":"page","entry":[]}`))
	require.NoError(t, err)
	assert.False(t, p.IsWhatsApp())
	assert.Empty(t, p.TextMessages())
}
