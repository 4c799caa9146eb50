//go:build !unix

package prompts

func osRelease() string {
	return ""
}
