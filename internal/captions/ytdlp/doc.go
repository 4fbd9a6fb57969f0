// Package ytdlp wraps the external downloader subprocess as a caption
// source, the third acquisition tier. The listing comes from --dump-json and
// transcript payloads arrive as json3 files in a working directory.
package ytdlp
