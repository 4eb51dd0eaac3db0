// Package worker consumes document jobs from the queue and runs them through
// the processing pipeline, writing artifacts back to disk.
package worker

import (
	"context"
	"log"
	"time"

	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/pipeline"
	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/queue/streams"
)

// Options configures a Processor.
type Options struct {
	// Stream is the Redis stream carrying document.enqueued events.
	Stream string
	// Taggers maps tagger name to its subdirectory under each job's input dir.
	Taggers map[string]string
	// InputDir and OutputDir are fallbacks for jobs that omit their own.
	InputDir  string
	OutputDir string
}

// Processor drives document processing by consuming document.enqueued events.
type Processor struct {
	logger   *log.Logger
	pipe     *pipeline.Processor
	consumer *streams.Consumer
	opts     Options
}

// NewProcessor constructs a Processor around an already-built pipeline.
func NewProcessor(logger *log.Logger, pipe *pipeline.Processor, cons *streams.Consumer, opts Options) *Processor {
	if opts.Stream == "" {
		opts.Stream = streams.EventDocumentEnqueued
	}
	return &Processor{logger: logger, pipe: pipe, consumer: cons, opts: opts}
}

// Start blocks, continuously processing document.enqueued events until the
// context is cancelled.
func (p *Processor) Start(ctx context.Context) error {
	p.logger.Printf("worker starting; consuming stream %s", p.opts.Stream)
	for {
		select {
		case <-ctx.Done():
			p.logger.Printf("worker stopping: %v", ctx.Err())
			return nil
		default:
		}

		msgs, err := p.consumer.Read(ctx, p.opts.Stream, streams.WithBlock(5*time.Second), streams.WithCount(16))
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			p.logger.Printf("error reading stream: %v", err)
			time.Sleep(time.Second)
			continue
		}

		for _, msg := range msgs {
			if err := p.handle(msg); err != nil {
				p.logger.Printf("error handling job %s: %v", msg.ID, err)
			}
			if err := p.consumer.Ack(ctx, p.opts.Stream, msg.ID); err != nil {
				p.logger.Printf("warn: failed to ack message %s: %v", msg.ID, err)
			}
		}
	}
}

func (p *Processor) handle(msg streams.Message) error {
	job, err := msg.Job()
	if err != nil {
		return err
	}
	if job.InputDir == "" {
		job.InputDir = p.opts.InputDir
	}
	if job.OutputDir == "" {
		job.OutputDir = p.opts.OutputDir
	}
	return ProcessArticle(p.logger, p.pipe, job.ArticleID, job.InputDir, job.OutputDir, p.opts.Taggers)
}

// ProcessArticle runs one article end to end: load tagger outputs, process,
// write artifacts. It is shared by the queue worker and the one-shot CLI path.
func ProcessArticle(logger *log.Logger, pipe *pipeline.Processor, articleID, inputDir, outputDir string, taggers map[string]string) error {
	docs, err := LoadTaggerDocs(inputDir, articleID, taggers)
	if err != nil {
		return err
	}
	res, err := pipe.Process(pipeline.Input{ArticleID: articleID, Taggers: docs})
	if err != nil {
		return err
	}
	if err := WriteArtifacts(outputDir, articleID, res); err != nil {
		return err
	}
	logger.Printf("article %s: %d passages kept, %d removed, %d chunks",
		articleID, len(res.Document.Passages), len(res.RemovedPassages), len(res.Chunks))
	return nil
}
