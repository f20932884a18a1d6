package output

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/chrisdamba/cafesim/internal/cloudwriter"
	"github.com/chrisdamba/cafesim/internal/models"
	"github.com/chrisdamba/cafesim/internal/repositories/postgres"
	"github.com/chrisdamba/cafesim/internal/simulator/producers"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("cafesim")

// Writer is one export sink. Tables arrive one at a time; Close flushes whatever the
// sink buffers.
type Writer interface {
	WriteTable(table *models.Table) error
	Close() error
}

// datasetWriter is implemented by sinks that also report on the dataset as a whole.
type datasetWriter interface {
	WriteDataset(ds *models.Dataset) error
}

type Exporter struct {
	cfg          *models.Config
	cloudFactory cloudwriter.CloudWriterFactory
	writers      map[string]Writer
}

type ExporterOption func(*Exporter)

// WithCloudWriterFactory replaces the S3 factory built from the configuration.
func WithCloudWriterFactory(f cloudwriter.CloudWriterFactory) ExporterOption {
	return func(e *Exporter) { e.cloudFactory = f }
}

// WithWriter registers a ready-made sink for format instead of building one.
func WithWriter(format string, w Writer) ExporterOption {
	return func(e *Exporter) { e.writers[strings.ToLower(format)] = w }
}

func NewExporter(cfg *models.Config, opts ...ExporterOption) *Exporter {
	e := &Exporter{cfg: cfg, writers: make(map[string]Writer)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export writes the dataset to every configured format, then uploads the file based
// outputs when cloud storage is enabled. The first failure aborts the export.
func (e *Exporter) Export(ctx context.Context, ds *models.Dataset) error {
	tables := Tables(ds)

	for _, format := range e.cfg.Output.Formats {
		format = strings.ToLower(format)
		w, err := e.writerFor(ctx, format, ds.Run)
		if err != nil {
			return fmt.Errorf("creating %s output: %w", format, err)
		}
		if err := writeAll(w, ds, tables); err != nil {
			w.Close()
			return fmt.Errorf("writing %s output: %w", format, err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("closing %s output: %w", format, err)
		}
		log.Infof("%s export complete (%d tables)", format, len(tables))
	}

	if e.cfg.CloudStorage.Enabled {
		return e.upload(ctx)
	}
	return nil
}

func writeAll(w Writer, ds *models.Dataset, tables []models.Table) error {
	if dw, ok := w.(datasetWriter); ok {
		if err := dw.WriteDataset(ds); err != nil {
			return err
		}
	}
	for i := range tables {
		if err := w.WriteTable(&tables[i]); err != nil {
			return fmt.Errorf("table %s: %w", tables[i].Name, err)
		}
	}
	return nil
}

func (e *Exporter) writerFor(ctx context.Context, format string, run models.RunInfo) (Writer, error) {
	if w, ok := e.writers[format]; ok {
		return w, nil
	}
	paths := e.cfg.Output.FilePaths
	switch format {
	case models.FormatCSV:
		return NewCSVOutput(paths.CSVDir)
	case models.FormatJSON:
		return NewJSONOutput(paths.JSONDir, run)
	case models.FormatXLSX:
		return NewXLSXOutput(paths.XLSXDir, e.cfg.Output.XLSXFile)
	case models.FormatParquet:
		return NewParquetOutput(paths.ParquetDir)
	case models.FormatDB:
		repo, err := postgres.Connect(ctx, e.cfg.Database.ConnString(), e.cfg.Database.Schema)
		if err != nil {
			return nil, err
		}
		return NewDBOutput(ctx, repo), nil
	case models.FormatKafka:
		producer, err := producers.NewSaramaProducer(e.cfg.Kafka)
		if err != nil {
			return nil, err
		}
		return NewKafkaOutput(producer, e.cfg.Kafka.TopicPrefix), nil
	case models.FormatConsole:
		return NewConsoleOutput(os.Stdout), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func (e *Exporter) upload(ctx context.Context) error {
	cs := e.cfg.CloudStorage
	factory := e.cloudFactory
	if factory == nil {
		if cs.Provider != "s3" {
			return fmt.Errorf("unsupported cloud storage provider: %s", cs.Provider)
		}
		f, err := cloudwriter.NewS3WriterFactory(ctx, cs.Region, cs.Endpoint)
		if err != nil {
			return fmt.Errorf("failed to create cloud writer factory: %w", err)
		}
		factory = f
	}

	uploader := cloudwriter.NewUploader(factory, cs.BucketName, cs.Prefix)
	for _, dir := range e.fileDirs() {
		keys, err := uploader.UploadDir(ctx, dir)
		if err != nil {
			return err
		}
		log.Infof("uploaded %d objects from %s to bucket %s", len(keys), dir, cs.BucketName)
	}
	return nil
}

// fileDirs lists the output directories of the selected file formats.
func (e *Exporter) fileDirs() []string {
	paths := e.cfg.Output.FilePaths
	var dirs []string
	for _, format := range e.cfg.Output.Formats {
		switch strings.ToLower(format) {
		case models.FormatCSV:
			dirs = append(dirs, paths.CSVDir)
		case models.FormatJSON:
			dirs = append(dirs, paths.JSONDir)
		case models.FormatXLSX:
			dirs = append(dirs, paths.XLSXDir)
		case models.FormatParquet:
			dirs = append(dirs, paths.ParquetDir)
		}
	}
	return dirs
}
