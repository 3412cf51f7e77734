package cek

// Message is a piece of speech: plain text in some language or an audio URL.
type Message struct {
	Value    string
	Language string // empty means the builder's default language
	url      bool
}

// Text is plain text spoken in the default language.
func Text(value string) Message {
	return Message{Value: value}
}

// Localized is plain text spoken in lang.
func Localized(value, lang string) Message {
	return Message{Value: value, Language: lang}
}

// URL is an audio file played from u.
func URL(u string) Message {
	return Message{Value: u, url: true}
}

// MessageSet is a brief answer for devices without a screen and a verbose one for the rest.
type MessageSet struct {
	Brief   Message
	Verbose []Message
}

// Builder makes response envelopes in a default language.
type Builder struct {
	lang string
}

// NewBuilder returns a Builder speaking lang unless a message says otherwise.
func NewBuilder(lang string) Builder {
	return Builder{lang: lang}
}

// Language returns the default language of the builder.
func (b Builder) Language() string {
	return b.lang
}

// Speak answers with msgs: a SimpleSpeech for one message, a SpeechList for more.
func (b Builder) Speak(msgs ...Message) *Response {
	r := b.Empty()
	r.Response.OutputSpeech = speech(b.lang, msgs)
	return r
}

// SpeakSet answers with a SpeechSet.
func (b Builder) SpeakSet(set MessageSet) *Response {
	brief := set.Brief.info(b.lang)
	r := b.Empty()
	r.Response.OutputSpeech = &OutputSpeech{
		Type:    SpeechSet,
		Brief:   &brief,
		Verbose: speech(b.lang, set.Verbose),
	}
	return r
}

// Empty is an acknowledgement without speech.
func (b Builder) Empty() *Response {
	return &Response{
		Version: ProtocolVersion,
		Response: ResponseBody{
			Card:       map[string]any{},
			Directives: []any{},
		},
		lang: b.lang,
	}
}

func speech(lang string, msgs []Message) *OutputSpeech {
	values := make([]SpeechInfo, 0, len(msgs))
	for _, m := range msgs {
		values = append(values, m.info(lang))
	}
	if len(values) == 1 {
		return &OutputSpeech{Type: SimpleSpeech, Values: values}
	}
	return &OutputSpeech{Type: SpeechList, Values: values}
}

func (m Message) info(defaultLang string) SpeechInfo {
	if m.url {
		return SpeechInfo{Type: URLSpeech, Lang: "", Value: m.Value}
	}
	lang := m.Language
	if lang == "" {
		lang = defaultLang
	}
	return SpeechInfo{Type: PlainText, Lang: lang, Value: m.Value}
}
