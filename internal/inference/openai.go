package inference

import (
	"context"
	"fmt"
	"io"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"beseda/internal/session"
)

// ttsVoice is the voice used for audio replies. The SDK's enum constants
// don't cover every voice the endpoint accepts, so the value is spelled out.
const ttsVoice = openai.AudioSpeechNewParamsVoice("nova")

// OpenAIProvider serves chat, image, transcription and speech calls
type OpenAIProvider struct {
	client openai.Client
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
	}
}

// CompleteChat sends the conversation to the chat completions API
func (p *OpenAIProvider) CompleteChat(ctx context.Context, model session.Model, system string, messages []session.Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: toOpenAIMessages(system, messages),
	}

	response, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return response.Choices[0].Message.Content, nil
}

// GenerateImage renders a prompt with DALL·E 3 and returns the image URL
func (p *OpenAIProvider) GenerateImage(ctx context.Context, prompt, size, quality string) (string, error) {
	response, err := p.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:   openai.ImageModelDallE3,
		Prompt:  prompt,
		N:       openai.Int(1),
		Size:    openai.ImageGenerateParamsSize(size),
		Quality: openai.ImageGenerateParamsQuality(quality),
	})
	if err != nil {
		return "", fmt.Errorf("image generation: %w", err)
	}

	if len(response.Data) == 0 {
		return "", fmt.Errorf("no image returned")
	}

	return response.Data[0].URL, nil
}

// DescribeImage asks the vision-capable chat model about an image. The image
// is passed as a URL or a base64 data URL.
func (p *OpenAIProvider) DescribeImage(ctx context.Context, question, imageURL string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModelGPT4o,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(question),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: imageURL,
				}),
			}),
		},
	}

	response, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("vision completion: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return response.Choices[0].Message.Content, nil
}

// TranscribeAudio converts spoken audio to text with Whisper
func (p *OpenAIProvider) TranscribeAudio(ctx context.Context, audio io.Reader, filename string) (string, error) {
	response, err := p.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: openai.AudioModelWhisper1,
		File:  openai.File(audio, filename, "audio/mpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("transcription: %w", err)
	}

	return response.Text, nil
}

// SynthesizeSpeech renders text as spoken audio bytes
func (p *OpenAIProvider) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	response, err := p.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model: openai.SpeechModelTTS1,
		Voice: ttsVoice,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("speech synthesis: %w", err)
	}
	defer response.Body.Close()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("read speech response: %w", err)
	}

	return data, nil
}

// toOpenAIMessages converts the session history, prepending the system entry
// when present
func toOpenAIMessages(system string, messages []session.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)+1)

	if system != "" {
		out = append(out, openai.SystemMessage(system))
	}

	for _, msg := range messages {
		switch msg.Role {
		case session.RoleUser:
			out = append(out, openai.UserMessage(msg.Content))
		case session.RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		}
	}

	return out
}
