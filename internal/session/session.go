// Package session ведёт интерактивный диалог: имя сущности, таблица,
// поля, связи, сводка, подтверждение и генерация файлов.
package session

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"crudgen/internal/dsl"
	"crudgen/internal/lint"
	"crudgen/internal/pg"
	"crudgen/internal/render"
)

// DDLApplier применяет сгенерированный DDL к базе.
type DDLApplier func(ctx context.Context, ddl map[string]string) error

type Session struct {
	ID        ulid.ULID
	in        *bufio.Reader
	out       io.Writer
	engine    *render.Engine
	outputDir string
	log       *zap.Logger
	confirm   Confirmer
	apply     DDLApplier
	dumpModel bool
}

// Result — итог успешной сессии.
type Result struct {
	Entity *dsl.Entity
	Issues []lint.Issue
	Files  []string
}

type Option func(*Session)

func WithConfirmer(c Confirmer) Option { return func(s *Session) { s.confirm = c } }

func WithDDLApplier(a DDLApplier) Option { return func(s *Session) { s.apply = a } }

// WithModelDump печатает модель в JSON после сводки.
func WithModelDump() Option { return func(s *Session) { s.dumpModel = true } }

func New(in io.Reader, out io.Writer, engine *render.Engine, outputDir string, log *zap.Logger, opts ...Option) *Session {
	s := &Session{
		ID:        ulid.Make(),
		in:        bufio.NewReader(in),
		out:       out,
		engine:    engine,
		outputDir: outputDir,
		log:       log,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.confirm == nil {
		s.confirm = LineConfirmer(s.in, out)
	}
	s.log = s.log.With(zap.Stringer("session", s.ID))
	return s
}

func (s *Session) banner() {
	headColor.Fprintln(s.out, "╔══════════════════════════════════════╗")
	headColor.Fprintln(s.out, "║               CRUDGEN                ║")
	headColor.Fprintln(s.out, "║     Gerador de CRUD com JPA          ║")
	headColor.Fprintln(s.out, "╚══════════════════════════════════════╝")
	fmt.Fprintln(s.out)
}

func (s *Session) ask(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	return readLine(s.in)
}

// Run проводит одну сессию. ErrCancelled означает отказ оператора:
// файлы не создаются.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	s.banner()

	name, err := s.ask("📝 Nome da entidade (Ex: Cliente): ")
	if err != nil {
		return nil, err
	}
	if name == "" {
		errColor.Fprintln(s.out, "❌ Nome da entidade é obrigatório!")
		return nil, dsl.ErrEntityNameRequired
	}

	def := dsl.DefaultTable(name)
	table, err := s.ask(fmt.Sprintf("🗃️  Nome da tabela (padrão: %s): ", def))
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(s.out, "\n🏗️  Configurando entidade: %s\n", name)
	fmt.Fprintf(s.out, "📋 Tabela: %s\n", orDefault(table, def))

	fieldGuide(s.out)
	fields, err := Collect(s.in, s.out,
		"Campo ("+dsl.FieldGrammar+") ou ENTER para terminar: ",
		dsl.ParseField, fieldAck)
	if err != nil {
		return nil, err
	}

	relationshipGuide(s.out)
	rels, err := Collect(s.in, s.out,
		"Relacionamento ("+dsl.RelationshipGrammar+") ou ENTER para terminar: ",
		dsl.ParseRelationship, relationshipAck)
	if err != nil {
		return nil, err
	}

	ent, err := dsl.Assemble(name, table, fields, rels)
	if err != nil {
		errColor.Fprintln(s.out, "❌ Erro: nenhum campo ou relacionamento informado.")
		return nil, err
	}
	s.log.Info("model assembled",
		zap.String("entity", ent.Name),
		zap.String("table", ent.Table),
		zap.Int("fields", len(ent.Fields)),
		zap.Int("relationships", len(ent.Relationships)))

	issues := lint.Check(ent)
	printSummary(s.out, ent, issues)

	if s.dumpModel {
		b, err := json.MarshalIndent(ent, "", "  ")
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(s.out, "\n%s\n", b)
	}

	ok, err := s.confirm()
	if err != nil {
		return nil, err
	}
	if !ok {
		errColor.Fprintln(s.out, "❌ Operação cancelada.")
		s.log.Info("generation cancelled")
		return nil, ErrCancelled
	}

	res := &Result{Entity: ent, Issues: issues}
	rctx := s.engine.Context(ent)
	for _, a := range s.engine.Artifacts() {
		path, err := s.engine.Write(s.outputDir, a, rctx)
		if err != nil {
			target := filepath.Join(s.outputDir, ent.Name, a.FileName(ent.Name))
			s.log.Error("generation failed", zap.String("artifact", a.Kind), zap.String("path", target), zap.Error(err))
			return res, fmt.Errorf("generate %s: %w", target, err)
		}
		res.Files = append(res.Files, path)
		fmt.Fprintf(s.out, "Gerado: %s\n", path)
		s.log.Debug("artifact written", zap.String("artifact", a.Kind), zap.String("path", path))
	}

	if s.apply != nil {
		ddl, err := pg.GenerateDDL(ent, s.engine.Catalog())
		if err != nil {
			return res, err
		}
		if err := s.apply(ctx, ddl); err != nil {
			return res, fmt.Errorf("apply ddl: %w", err)
		}
		okColor.Fprintf(s.out, "✅ DDL aplicado para a tabela %s\n", ent.Table)
	}

	okColor.Fprintf(s.out, "\n🎉 %d arquivos gerados para %s\n", len(res.Files), ent.Name)
	for _, f := range res.Files {
		fmt.Fprintf(s.out, "   - %s\n", f)
	}
	return res, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func fieldGuide(out io.Writer) {
	headColor.Fprintln(out, "\n--- Configuração de Campos ---")
	fmt.Fprintln(out, "Formatos aceitos:")
	for _, ex := range []string{
		"nome:String:100",
		"idade:Integer::positive",
		"preco:BigDecimal::positive",
		"ativo:Boolean",
		"nascimento:LocalDate",
	} {
		fmt.Fprintf(out, "  %s\n", ex)
	}
	fmt.Fprintln(out)
}

func relationshipGuide(out io.Writer) {
	headColor.Fprintln(out, "\n--- Configuração de Relacionamentos ---")
	fmt.Fprintln(out, "Formatos aceitos:")
	fmt.Fprintln(out, "  OneToMany:  pedidos:OneToMany:Pedido:cliente:cascade")
	fmt.Fprintln(out, "  ManyToOne:  categoria:ManyToOne:Categoria::not_null")
	fmt.Fprintln(out, "  OneToOne:   endereco:OneToOne:Endereco::cascade,owner")
	fmt.Fprintln(out, "  ManyToMany: tags:ManyToMany:Tag::cascade,inverse_field=posts")
	fmt.Fprintln(out, "\nOpções: cascade, not_null, owner, inverse_field=nome")
	fmt.Fprintln(out)
}
